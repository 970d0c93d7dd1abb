/*
Package operation applies a loaded rule spec to the filesystem.

	+-------------+     +-------------+     +-------------+
	|    rules    | --> |   Engine    | --> |   status    |
	|  (RuleSpec) |     | (per file)  |     |  (Summary)  |
	+-------------+     +------+------+     +-------------+
	                           |
	                    +------+------+
	                    |   backup    |
	                    |  (.orig)    |
	                    +-------------+

🎯 Modes:
  - Translate: back up each target once, then rewrite it from the backup
  - Restore: copy each backup over its target
  - Status: compare each target with the translation of its backup

🔄 Flow:
 1. Files are visited in spec order, or concurrently with Parallel
 2. Ignored files are reported as skipped
 3. Each result is added to the summary and handed to the Reporter
 4. The first error stops the run and is returned with the partial summary

🔍 Example:

	eng, err := operation.New(operation.Options{FS: osfs.New("")})
	if err != nil {
		return err
	}
	summary, err := eng.Translate(ctx, spec)
*/
package operation
