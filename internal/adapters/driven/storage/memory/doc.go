// Package memory provides in-memory implementations of the driven ports.
//
// The stores here keep the same observable behaviour as their persistent
// counterparts and are used by service and adapter tests.
package memory
