/*
Package config loads the optional settings file for translate.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Reads tool settings that are not part of the spec file
- Picks a parser by file extension
- Fills defaults and validates values

📝 Keys:

	backup_suffix  suffix of backup files (default ".orig")
	max_rewrites   rewrite cap per line, 0 disables (default 10000)
	parallel       process target files concurrently (default false)
	ignore         glob patterns of target files to leave alone

HCL files may reference the environment as env.NAME:

	backup_suffix = ".orig"
	ignore        = ["vendor/**", "${env.SKIP}"]

🔍 Example:

	cfg, err := config.Load(ctx, osfs.New(""), ".translate.yaml")
	if err != nil {
		return err
	}
*/
package config
