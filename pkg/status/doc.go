/*
Package status describes what a run did to each target file.

	+-------------+
	|  Operation  |
	+------+------+
	       |
	  FileResult
	       |
	+------+------+
	|   Summary   |
	+------+------+
	       |
	+------+------+
	|  Formatter  |
	|  (UI/UX)    |
	+-------------+

🎯 Purpose:
- Names the possible outcomes for a file (new, modified, unchanged, ...)
- Collects per-file results in spec order
- Formats results for the console (emoji lines, aligned lines, tables)

📝 Statuses:

	new        backup created during this run, file translated
	modified   working file content changed
	unchanged  working file content already matched
	restored   working file copied back from its backup
	skipped    file matched an ignore pattern
	missing    no backup exists (status checks only)

🔍 Example:

	summary := status.NewSummary()
	summary.Add(status.FileResult{Path: "foo.file", Status: status.StatusNew})

	fmt.Println(status.FormatSummary(summary))
*/
package status
