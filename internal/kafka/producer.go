package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"ms-lotto/internal/logger"
	"ms-lotto/internal/models"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Topics struct {
	TicketsIssued  string
	ResultsChecked string
}

type Producer struct {
	Writer messageWriter
	Topics Topics
	Logger *logger.Logger
}

func NewProducer(brokers []string, topics Topics, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, Topics: topics, Logger: log}
}

// Publish writes one keyed message to topic.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	err := p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	if p.Logger != nil {
		p.Logger.LogKafka("PUBLISH", topic, key)
	}
	return nil
}

// PublishTicketsIssued streams the purchase event to Kafka
func (p *Producer) PublishTicketsIssued(ctx context.Context, event models.TicketsIssuedEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, p.Topics.TicketsIssued, event.PurchaseID, msgBytes)
}

// PublishResultsChecked streams the statistics of a checked purchase to Kafka
func (p *Producer) PublishResultsChecked(ctx context.Context, event models.ResultsCheckedEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, p.Topics.ResultsChecked, event.PurchaseID, msgBytes)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
