package store

const (
	createUser = `INSERT INTO users (username, password_hash)
    VALUES ($1, $2)
    RETURNING id, username, password_hash, created_at;`

	findUserByUsername = `SELECT id, username, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findTasksByOwnerID = `SELECT id, name, stage, created_at, updated_at, user_id
    FROM tasks
    WHERE user_id = $1
    ORDER BY id;`

	deleteUserByUsername = `DELETE FROM users
    WHERE username = $1;`

	createTask = `INSERT INTO tasks (name, stage, user_id)
    VALUES ($1, $2, $3)
    RETURNING id, name, stage, created_at, updated_at, user_id;`

	findTaskByID = `SELECT t.id, t.name, t.stage, t.created_at, t.updated_at, t.user_id,
           u.id, u.username, u.created_at
    FROM tasks t
    JOIN users u ON u.id = t.user_id
    WHERE t.id = $1;`

	deleteTaskByID = `DELETE FROM tasks
    WHERE id = $1;`
)
