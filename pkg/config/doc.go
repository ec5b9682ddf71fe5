/*
Package config holds the dataset split configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |                       |
	+-----+-----+ +---+----+            +----+----+
	|   JSON    | |  YAML  |            |   HCL   |
	+-----------+ +--------+            +---------+

🎯 Purpose:
- One explicit value carries the dataset root, the class list, the
  partition names and the split ratios
- Partitioner and verifier both receive it, so tests can point them at any
  temporary directory

🔄 Flow:
1. Default() provides the built-in dataset layout
2. LoadConfig overlays whatever fields a config file sets
3. Validate rejects layouts that could escape the root or wipe sources

📝 Ratios need not add up to 1.0. The remainder after the train and
validation cutoffs always lands in the test partition; an unbalanced sum only
produces a warning.

🔍 Example:

	cfg, err := config.LoadConfig(ctx, "datasplit.yaml")
	if err != nil {
		return err
	}

	// datasplit.yaml
	root: emotion_dataset
	classes: [angry, happy, neutral, sad, surprise]
	ratios:
	  train: 0.70
	  validation: 0.15
	  test: 0.15
	seed: 42
*/
package config
