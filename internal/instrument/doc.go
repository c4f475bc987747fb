// Package instrument is the tick-size/lot-size registry the ingress
// decoder consults to turn a wire order's decimal price and quantity
// strings into the engine's scaled-integer ticks/lots.
package instrument
