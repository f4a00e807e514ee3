// Package path builds the directed segment chain a molding is swept along.
// A chain is built from an ordered list of parts (length, relative turn,
// rise), offset laterally, and handed to the section builder. Everything
// here is a pure function of its inputs.
package path
