package ws

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Relay forwards queue deliveries to the hub until the channel closes.
// The account comes from the "conta" header set by the publisher.
func Relay(h *Hub, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		account, _ := d.Headers["conta"].(string)
		h.Publish(account, d.Body)
	}
	h.log.Warn("deliveries_channel_closed")
}
