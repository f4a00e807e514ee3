// Package design defines the result of evaluating a molding script: a set
// of named moldings, each with the parameters it is generated from and
// the world origin its path starts at.
package design
