package booking

import (
	"fmt"
	"net/url"
)

// Links returns map and ride-hailing deep links to a hospital
func Links(hospital, city string) (maps, ride string) {
	encoded := url.QueryEscape(fmt.Sprintf("%s, %s", hospital, city))

	maps = "https://www.google.com/maps/search/?api=1&query=" + encoded
	ride = "https://m.uber.com/ul/?action=setPickup&dropoff[formatted_address]=" + encoded
	return maps, ride
}
