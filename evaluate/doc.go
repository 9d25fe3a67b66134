// Package evaluate scores learners on held-out data.
//
//	train, test, _ := evaluate.ShuffleSplit(tbl.Len(), 0.2, 0)
//	res, err := evaluate.TestOnTestData(ctx, tbl.Select(train), tbl.Select(test), learner)
//	auc := evaluate.AUC(res)
package evaluate
