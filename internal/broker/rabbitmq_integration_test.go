//go:build integration
// +build integration

package broker

/*
	Para rodar: go test -tags=integration -v ./internal/broker -run TestRabbitMQ_ -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

func startRabbit(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start rabbit: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5672/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

// Sobe RabbitMQ real, publica com o Publisher e consome pela lib para validar a mensagem
func TestRabbitMQ_PublishAndConsume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uri := startRabbit(t)
	queue := "deliveries_test"

	// Publisher
	pub, err := NewPublisher(uri, queue)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	// Consumer direto pela lib amqp
	conn, err := amqp.Dial(uri)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("channel: %v", err)
	}
	t.Cleanup(func() { _ = ch.Close() })

	// Garante a fila (idempotente)
	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(queue, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Publica
	body := `{"id":"abc"}`
	headers := amqp.Table{"k": "v"}
	if err := pub.Publish(ctx, Message{ID: "abc", Type: DocumentLocatedType, Body: []byte(body), Headers: headers}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// Aguarda receber (com timeout)
	select {
	case m := <-msgs:
		if string(m.Body) != body {
			t.Fatalf("body mismatch: got=%q want=%q", string(m.Body), body)
		}
		if m.Headers["k"] != "v" {
			t.Fatalf("header mismatch: %#v", m.Headers)
		}
		if m.MessageId != "abc" || m.ContentType != "application/json" {
			t.Fatalf("properties mismatch: id=%q ct=%q", m.MessageId, m.ContentType)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout esperando mensagem")
	}
}

// Dispatcher -> fila -> Consumer, mesmo caminho usado pelo relay de websocket
func TestRabbitMQ_DispatcherToConsumer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uri := startRabbit(t)
	queue := "deliveries_relay_test"

	pub, err := NewPublisher(uri, queue)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	cons, err := NewConsumer(uri, queue, "test-consumer", 10)
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	t.Cleanup(func() { _ = cons.Close() })

	d := NewDeliveryDispatcher(pub, nil)
	company := models.Company{ID: "10", Name: "Padaria Central", AccountID: "empresa1"}
	if err := d.DispatchDocument(ctx, company, models.Document{ID: "99", Title: "Holerite"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	select {
	case m := <-cons.Deliveries():
		var ev DocumentDelivery
		if err := json.Unmarshal(m.Body, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Document.ID != "99" || ev.AccountID != "empresa1" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout esperando entrega")
	}
}
