/*
Package grades implements the grading rule applied to each student row.

The average is the ceiling of the mean of three scores. A student with more
than 15 absences fails regardless of the average, below 50 fails on score,
below 70 needs a final exam (scoring 100 minus the average) and anything else
is approved.
*/
package grades
