// Package queue_publisher publishes domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures
// without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/gicinemas/seat-booking/internal/queue"
)

// Publisher emits booking events over AMQP. It dials per publish,
// which keeps it robust against broker restarts at the cost of
// connection churn; confirmations are rare enough that this is fine.
type Publisher struct {
    url string
}

// New returns a Publisher targeting the broker from the environment.
func New() *Publisher {
    return &Publisher{url: q.BrokerURL()}
}

// PublishBookingConfirmed publishes a BookingConfirmedEvent to the
// booking.confirmed queue. Messages are marked persistent. Any error
// is logged and returned so the caller can choose to ignore it.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        q.QueueName, // name
        true,        // durable
        false,       // autoDelete
        false,       // exclusive
        false,       // noWait
        nil,         // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",          // default exchange
        q.QueueName, // routing key = queue name
        false,       // mandatory
        false,       // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
