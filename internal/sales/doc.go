// Package sales implements the dashboard's data pipeline: generating a raw
// daily sales series and deriving records, growth rates, summary statistics,
// category labels and threshold filters from it.
//
// Every function here is pure over its inputs. The only source of
// nondeterminism is the random source injected into a Generator, so a seeded
// generator yields a reproducible series.
//
// Example usage:
//
//	gen := sales.NewSeededGenerator(42)
//	series, err := gen.Generate(sales.DefaultCount, sales.DefaultMin, sales.DefaultMax)
//	if err != nil {
//		return err
//	}
//	records, err := sales.BuildRecords(series)
//	if err != nil {
//		return err
//	}
//	top := sales.FilterAbove(records, 150)
package sales
