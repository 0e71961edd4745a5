package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Client wraps one connection and channel bound to a direct exchange with two
// durable queues: imports (transaction batches in) and exports (report
// triggers out).
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	importQueue  string
	exportQueue  string
}

func NewClient(url, exchangeName, importQueue, exportQueue string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		importQueue:  importQueue,
		exportQueue:  exportQueue,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{c.importQueue, c.exportQueue} {
		_, err = c.channel.QueueDeclare(
			queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		// Routing key matches the queue name on a direct exchange.
		err = c.channel.QueueBind(queue, queue, c.exchangeName, false, nil)
		if err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// PublishTransactionBatch publishes a batch of imported transactions.
func (c *Client) PublishTransactionBatch(ctx context.Context, source string, txs []BatchTransaction) error {
	msg := NewTransactionBatchMessage(source, txs)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.publish(ctx, c.importQueue, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published transaction batch",
		"source", source,
		"count", len(txs),
		"exchange", c.exchangeName,
		"queue", c.importQueue)
	return nil
}

// PublishReportExport publishes a request to export one month's summary.
func (c *Client) PublishReportExport(ctx context.Context, year, month int) error {
	msg := NewReportExportMessage(year, month)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := c.publish(ctx, c.exportQueue, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published report export request",
		"year", year,
		"month", month,
		"exchange", c.exchangeName,
		"queue", c.exportQueue)
	return nil
}

// ConsumeTransactionBatches delivers import batches to handler until ctx is
// done. Handler errors requeue the message; undecodable bodies are dropped.
func (c *Client) ConsumeTransactionBatches(ctx context.Context, handler func(*TransactionBatchMessage) error) error {
	return c.consume(ctx, c.importQueue, func(body []byte) error {
		msg, err := TransactionBatchMessageFromJSON(body)
		if err != nil {
			return errDrop{err}
		}
		return handler(msg)
	})
}

// ConsumeReportExports delivers export requests to handler until ctx is done.
func (c *Client) ConsumeReportExports(ctx context.Context, handler func(*ReportExportMessage) error) error {
	return c.consume(ctx, c.exportQueue, func(body []byte) error {
		msg, err := ReportExportMessageFromJSON(body)
		if err != nil {
			return errDrop{err}
		}
		return handler(msg)
	})
}

// errDrop marks a message that must be rejected without requeue.
type errDrop struct{ err error }

func (e errDrop) Error() string { return e.err.Error() }

func (c *Client) consume(ctx context.Context, queue string, handle func(body []byte) error) error {
	msgs, err := c.channel.Consume(
		queue,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming", "queue", queue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "queue", queue, "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			if err := handle(delivery.Body); err != nil {
				if _, drop := err.(errDrop); drop {
					slog.ErrorContext(ctx, "Dropping undecodable message", "queue", queue, "error", err)
					delivery.Nack(false, false)
					continue
				}
				slog.ErrorContext(ctx, "Failed to handle message", "queue", queue, "error", err)
				delivery.Nack(false, true)
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
