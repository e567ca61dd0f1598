// Package shipment defines the shipment attributes a quote request
// carries and the derived trade-lane classification that drives
// carrier service code selection.
package shipment
