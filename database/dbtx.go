package database

import (
	"database/sql"
	"strings"
)

// DBTX は *sqlx.DB と *sqlx.Tx の共通インターフェースです。
// クエリは '?' プレースホルダで書き、Rebind でドライバに合わせます。
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
}

// likePattern は部分一致検索用に LIKE のメタ文字をエスケープして '%' で囲みます。
// クエリ側は `LIKE ? ESCAPE '\'` と書きます。
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
