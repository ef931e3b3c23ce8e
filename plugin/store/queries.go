package store

import (
	"database/sql"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/tokstream/pkg/source"
	"github.com/saylorsolutions/tokstream/pkg/token"
)

func newQuerySource(log hclog.Logger, table string, rows *sql.Rows) token.Source {
	var done bool
	return source.Func(table, func() token.Token {
		if done {
			return source.EOFToken()
		}
		if !rows.Next() {
			done = true
			if err := rows.Err(); err != nil {
				log.Error("Failed to read recorded token", "table", table, "error", err)
			}
			_ = rows.Close()
			return source.EOFToken()
		}
		var (
			tt        int
			text      string
			pos, line int
		)
		if err := rows.Scan(&tt, &text, &pos, &line); err != nil {
			log.Error("Failed to scan recorded token", "table", table, "error", err)
			done = true
			_ = rows.Close()
			return source.EOFToken()
		}
		t := token.New(token.Type(tt), text)
		t.Pos = pos
		t.Line = line
		return t
	})
}
