package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"techpro-backoffice/config"
	"techpro-backoffice/logger"
)

// Domain event names published to Kafka
const (
	EventBookingCreated   = "booking.created"
	EventBookingAssigned  = "booking.assigned"
	EventBookingCompleted = "booking.completed"
	EventPaymentInitiated = "payment.initiated"
	EventPaymentVerified  = "payment.verified"
)

var (
	producer      *kafka.Writer
	producerMutex sync.Mutex
)

// InitProducer initializes a Kafka writer using brokers from the config.
// Publishing is best-effort everywhere, so a missing broker is not fatal.
func InitProducer() {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return
	}

	brokers := strings.Split(config.AppConfig.KafkaBrokers, ",")

	var validBrokers []string
	for _, b := range brokers {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured")
		return
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Topic:        config.AppConfig.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("Kafka producer initialized. Brokers=%v Topic=%s", validBrokers, config.AppConfig.KafkaTopic)
}

// CloseProducer shuts the Kafka writer down gracefully
func CloseProducer() error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}

// PublishEvent marshals the payload to JSON and publishes it keyed by key,
// retrying with exponential backoff (3 attempts). When Kafka is disabled
// the publish is silently skipped.
func PublishEvent(event, key string, payload map[string]interface{}) error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if producer == nil {
		logger.Debug("Kafka producer not initialized, skipping publish of %s", event)
		return nil
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["event"] = event
	payload["ts"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := producer.WriteMessages(ctx, msg)
		cancel()

		if err == nil {
			logger.Info("Published %s to Kafka (key=%s)", event, key)
			return nil
		}

		lastErr = err
		if attempt < 2 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Warn("Kafka publish attempt %d/3 failed, retrying in %v: %v", attempt+1, backoff, err)
			time.Sleep(backoff)
		} else {
			logger.Error("Kafka publish failed after 3 attempts: %v", err)
		}
	}

	return lastErr
}
