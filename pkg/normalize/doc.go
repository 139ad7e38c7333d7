// Package normalize converts raw Alpaca API objects into the fixed-shape rows
// the dashboard displays. Every function is pure: absent or empty input
// yields an empty result, never an error.
package normalize
