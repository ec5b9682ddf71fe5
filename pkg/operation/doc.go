/*
Package operation sequences the steps of a datasplit run.

	+-------------+      +-------------+
	|    Split    | ---> |    Count    |
	| (partition) |      |  (verify)   |
	+-------------+      +-------------+

🎯 Purpose:
- Wraps the partitioner and the verifier as Operations
- Runs them strictly one after another through OperationRunner

🔄 Flow:
1. SplitOperation resets the partition tree and moves every class
2. CountOperation walks the same tree and prints the summary table
3. The runner stops at the first error; nothing is rolled back

The filesystem is the only state shared between operations. Two runs against
the same dataset root at once are unsupported.

🔍 Example:

	split, err := operation.NewSplitOperation(operation.Options{Config: cfg})
	if err != nil {
		return err
	}
	count, err := operation.NewCountOperation(operation.Options{Config: cfg})
	if err != nil {
		return err
	}
	err = operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, split, count)
*/
package operation
