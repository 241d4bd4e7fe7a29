// Package events carries task change events from the services that make
// changes to the components that react to them.
//
// A ChangeEvent is serialized to a small JSON payload and published on a
// named topic through a Broker. The services only see the Publisher; the
// Notifier only sees Broker.Subscribe. Two brokers exist:
// - MemoryBroker: in-process broadcast, used by tests and single-process runs
// - pgnotify.Broker: PostgreSQL LISTEN/NOTIFY
//
// Delivery is at-most-once. A subscriber that is not listening when an event
// is published never sees it.
package events
