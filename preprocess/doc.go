// Package preprocess transforms spectral tables.
//
// Every preprocessor returns a new table whose domain remembers how its
// features were computed. Converting another table into that domain repeats
// the transformation on the other table's rows:
//
//	pp := preprocess.Chain{
//		preprocess.Interpolate{Points: axis},
//		preprocess.SavitzkyGolay{Window: 9, PolyOrder: 2, Deriv: 2},
//	}
//	train, _ := pp.Apply(train)
//	test, _ := data.Convert(train.Domain, test)
//
// Preprocessors that treat rows independently therefore give the same
// values whether applied to a whole table or to a split followed by a
// conversion.
package preprocess
