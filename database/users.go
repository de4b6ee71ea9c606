package database

import (
	"fmt"

	"foodhut/model"
)

// CreateUser は利用者を登録します。同じユーザー名があれば ErrDuplicateKey を返します。
func CreateUser(db DBTX, username, password string) error {
	const q = `INSERT INTO users (username, password) VALUES (?, ?)`
	if _, err := db.Exec(db.Rebind(q), username, password); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("CreateUser (Username: %s): %w", username, ErrDuplicateKey)
		}
		return fmt.Errorf("CreateUser (Username: %s) failed: %w", username, err)
	}
	return nil
}

// AuthenticateUser はユーザー名とパスワードが一致する行があるかを返します。
func AuthenticateUser(db DBTX, username, password string) (bool, error) {
	const q = `SELECT COUNT(*) FROM users WHERE username = ? AND password = ?`
	var n int
	if err := db.Get(&n, db.Rebind(q), username, password); err != nil {
		return false, fmt.Errorf("failed to authenticate user %s: %w", username, err)
	}
	return n > 0, nil
}

// DeleteUser は利用者を削除し、削除件数を返します。その利用者の注文は残ります。
func DeleteUser(db DBTX, username string) (int64, error) {
	const q = `DELETE FROM users WHERE username = ?`
	res, err := db.Exec(db.Rebind(q), username)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %s: %w", username, err)
	}
	return res.RowsAffected()
}

func GetAllUsers(db DBTX) ([]model.User, error) {
	users := []model.User{}
	if err := db.Select(&users, "SELECT username, password FROM users"); err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// SearchUsers はユーザー名またはパスワードに q を含む利用者を返します。
func SearchUsers(db DBTX, q string) ([]model.User, error) {
	const query = `
		SELECT username, password FROM users
		WHERE username LIKE ? ESCAPE '\' OR password LIKE ? ESCAPE '\'`
	p := likePattern(q)
	users := []model.User{}
	if err := db.Select(&users, db.Rebind(query), p, p); err != nil {
		return nil, fmt.Errorf("failed to search users (%s): %w", q, err)
	}
	return users, nil
}
