package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/unowned-ai/ktl/pkg/db"
	"github.com/unowned-ai/ktl/pkg/records"
	"github.com/unowned-ai/ktl/pkg/render"
)

const describeSchemaStatement = `
SELECT m.name AS "table", p.name AS "column", p.type AS "type"
FROM sqlite_master AS m
JOIN pragma_table_info(m.name) AS p
WHERE m.type = 'table'
ORDER BY m.rowid, p.cid
`

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the tables and columns a journal is loaded into",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}

		result, err := describeSchema(context.Background())
		if err != nil {
			return err
		}
		return render.Write(cmd.OutOrStdout(), format, result)
	},
}

// describeSchema creates the schema in a scratch database and lists it.
func describeSchema(ctx context.Context) (*records.Result, error) {
	conn, err := db.OpenMemoryDB("ktl-schema-" + uuid.NewString())
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := db.InitializeSchema(conn, db.TargetSchemaVersion); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return records.RunQuery(ctx, conn, describeSchemaStatement)
}
