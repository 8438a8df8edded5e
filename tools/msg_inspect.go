package main

import (
	"flag"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"

	"github.com/pavelsokolov/yazen-chat-app/repositories"
)

// msg_inspect dumps the message keyspace of a running (or stopped)
// chat database as a table. Read-only: it can be pointed at a store
// another process currently holds open.
func main() {
	dbPath := flag.String("db", "./data/yazen", "Path to badger DB")
	prefix := flag.String("prefix", repositories.MessagePrefix, "Prefix to scan")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "ID", "Sender", "Created At", "Edited", "Text"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			message, err := repositories.MapRecord(key, value)
			if err != nil {
				// Keys without an identity (nothing to display) are skipped.
				continue
			}

			createdAt := ""
			if message.CreatedAt != nil {
				createdAt = message.CreatedAt.Format("2006-01-02 15:04:05")
			}
			edited := ""
			if message.EditedAt != nil {
				edited = "yes"
			}
			table.Append([]string{key, message.ID, message.SenderName, createdAt, edited, message.Text})
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning messages: ", err)
	}

	table.Render()
}
