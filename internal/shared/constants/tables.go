// Package constants defines shared constant values such as table names.
package constants

const (
	TableSubscriptions = "subscriptions"
	TableAddresses     = "addresses"
	TableZones         = "zones"
	TableZoneOverrides = "zone_overrides"
	TableRoutes        = "routes"
	TableRouteStops    = "route_stops"
	TableBottles       = "bottles"
	TableBottleLogs    = "bottle_logs"
)
