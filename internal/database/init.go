package db

import (
	"database/sql"
	"fmt"
	"os"
)

type Database struct {
	dbName      string
	MysqlClient *sql.DB
}

func NewDatabase(client *sql.DB, dbName string) (*Database, error) {
	return &Database{
		dbName:      dbName,
		MysqlClient: client,
	}, nil
}

func (d *Database) CreateDatabaseAndTable() error {
	createDatabase := `CREATE DATABASE IF NOT EXISTS ` + d.dbName

	if _, err := d.MysqlClient.Exec(createDatabase); err != nil {
		return fmt.Errorf("failed to create db %s: %v", d.dbName, err)
	}

	useDatabase := `USE ` + d.dbName

	if _, err := d.MysqlClient.Exec(useDatabase); err != nil {
		return fmt.Errorf("failed to use db %s: %v", d.dbName, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := wd + "/migrations/"

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	for _, e := range entries {
		c, err := os.ReadFile(path + e.Name())
		if err != nil {
			return err
		}

		if _, err := d.MysqlClient.Exec(string(c)); err != nil {
			return fmt.Errorf("failed to run migration %s: %v", e.Name(), err)
		}
	}

	return nil
}
