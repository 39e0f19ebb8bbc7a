/*
Package status renders user-facing progress for tree copies.

	            +-------------+
	            |   Status    |
	            |   (UI/UX)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Console  |           | Reporter|
	| (entries) |           |  (jobs) |
	+-----------+           +---------+

🎯 Purpose:
- Formats per-entry copy events for terminal output
- Tracks counts of directories, files, and links handled
- Reports job-level progress in a user-friendly format
- Mirrors everything to structured logs for debugging

🔄 Flow:
1. Receives events from the copier as entries are processed
2. Formats each event with a symbol and aligned columns
3. Prints to the console and logs via zerolog
4. Summarizes totals once a job finishes

🤝 Interfaces:
- Console: implements the copier observer for per-entry lines
- Reporter: job banners and final success or failure lines

🔍 Example:

	console := status.NewConsole(os.Stdout)
	c := copier.New(copier.Options{Observer: console})
	if err := c.Copy(ctx, src, dst); err != nil {
		return err
	}
	fmt.Println(console.Summary())
*/
package status
