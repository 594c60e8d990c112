// Package simulation runs the Monte Carlo connectivity experiment: random
// pairs of sites are connected until every site belongs to one component,
// counting the pairs drawn along the way.
//
// The random source is seeded from the number of sites, so every engine
// variant sees the identical draw sequence for the same N and the results
// are directly comparable.
//
// Usage:
//
//	uf, err := unionfind.NewHWQUPC(1000)
//	if err != nil {
//	    return err
//	}
//	result, err := simulation.Count(uf, logger)
//	// result.Probes pairs drawn, result.Unions == 999
package simulation
