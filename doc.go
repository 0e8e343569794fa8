// Copyright 2026 The gradebook-sheets Authors. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package gradebook-sheets grades the students listed in a Google Sheets worksheet.

gradebook-sheets reads the student names, absences and three scores from the worksheet, computes each
student's average (rounded up), status and the minimum score needed on the final exam, and writes the
status and minimum score columns back to the worksheet. It is a one-shot job, run from the command line
or from a cron job.

gradebook-sheets supports the following commands:

  - grade, to grade the worksheet and write the results back (the default when no command is given)
  - get, to grade the worksheet and store the results in a local TSV file
  - authorise, to authorise application access to the Google Sheets worksheet
  - version, to display the current version
*/
package gradebook
