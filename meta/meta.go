// meta/meta.go
package meta

// MaxSteps is the default number of levels a simulation descends.
const MaxSteps = 10

// Simulations is the default number of simulations per search.
const Simulations = 100

// Exploration weights the prior against accumulated value during selection.
const Exploration = 10.0

// Temperature is the default exponent applied (as 1/tau) to root visits.
const Temperature = 1.0

// MaxMoves caps a self-play game.
const MaxMoves = 500
