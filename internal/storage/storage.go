package storage

import "database/sql"

var (
	Submission *SubmissionStorage
)

func Init(client *sql.DB) {
	Submission = NewSubmissionStorage(client)
}
