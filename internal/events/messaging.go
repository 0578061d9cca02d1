package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange           = "storefront.events"
	OrderSubmittedRoutingKey = "order.submitted.v1"
	storefrontServiceName    = "storefront-service-go"
)

func serviceQueue(serviceName, routingKey string) string {
	return serviceName + "." + routingKey
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

func orderQueueName(routingKey string) string {
	return serviceQueue(storefrontServiceName, routingKey)
}
