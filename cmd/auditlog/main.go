package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/IBM/sarama"

	"github.com/gometeo/weatherform/internal/config"
	"github.com/gometeo/weatherform/internal/events"
	"github.com/gometeo/weatherform/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env)
	log.Info("Запуск журнала запросов погоды...")

	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS не задан")
		os.Exit(1)
	}

	// 1. Настройка Kafka Consumer
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Return.Errors = true
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumer, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroup, saramaCfg)
	if err != nil {
		log.Error("Ошибка создания Kafka consumer", "error", err)
		os.Exit(1)
	}

	// 2. Запуск цикла чтения
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		handler := events.NewAuditHandler(log)
		for {
			if err := consumer.Consume(ctx, []string{cfg.KafkaTopic}, handler); err != nil {
				log.Error("Ошибка при чтении Kafka", "error", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		for err := range consumer.Errors() {
			log.Error("Ошибка Kafka consumer", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Остановка сервиса...")
	cancel()
	if err := consumer.Close(); err != nil {
		log.Error("Ошибка при закрытии consumer group", "error", err)
	}
	wg.Wait()
}
