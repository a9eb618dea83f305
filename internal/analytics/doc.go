// Package analytics turns loaded record collections into the dashboard
// series. Aggregators never modify their input; a missing or malformed column
// yields a well-shaped empty result together with an error naming the cause.
package analytics
