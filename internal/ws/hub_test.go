package ws

import (
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func recv(t *testing.T, c *Client, want string) {
	t.Helper()
	select {
	case got := <-c.Send:
		if string(got) != want {
			t.Fatalf("%s got %q, want %q", c.ID, got, want)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timeout waiting %s", c.ID)
	}
}

func silent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case got, ok := <-c.Send:
		if ok {
			t.Fatalf("%s should not receive, got %q", c.ID, got)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 1)}
	c2 := &Client{Account: "empresa2", Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	h.Broadcast([]byte("hello"))

	recv(t, c1, "hello")
	recv(t, c2, "hello")
}

func TestHub_PublishFiltersByAccount(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	all := &Client{ID: "all", Send: make(chan []byte, 2)}
	one := &Client{ID: "one", Account: "empresa1", Send: make(chan []byte, 2)}
	two := &Client{ID: "two", Account: "empresa2", Send: make(chan []byte, 2)}
	h.Register(all)
	h.Register(one)
	h.Register(two)

	h.Publish("empresa1", []byte(`{"conta":"empresa1"}`))

	recv(t, all, `{"conta":"empresa1"}`)
	recv(t, one, `{"conta":"empresa1"}`)
	silent(t, two)
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	slow := &Client{ID: "slow", Send: make(chan []byte)} // sem buffer: nunca aceita
	h.Register(slow)
	h.Broadcast([]byte("x"))

	deadline := time.Now().Add(time.Second)
	for h.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client not dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := <-slow.Send; ok {
		t.Fatal("send channel should be closed")
	}
	// Unregister depois do drop não pode fechar o canal de novo
	h.Unregister(slow)
}

func TestRelay_UsesAccountHeader(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c := &Client{ID: "c", Account: "empresa2", Send: make(chan []byte, 2)}
	h.Register(c)

	ch := make(chan amqp.Delivery, 2)
	ch <- amqp.Delivery{Headers: amqp.Table{"conta": "empresa1"}, Body: []byte("skip")}
	ch <- amqp.Delivery{Headers: amqp.Table{"conta": "empresa2"}, Body: []byte("keep")}
	close(ch)

	Relay(h, ch)
	recv(t, c, "keep")
	silent(t, c)
}
