package db

const (
	// SchemaV1 defines the tables a loaded journal is normalized into.
	// No foreign keys: the loader checks every reference before inserting.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS tags (
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exercises (
    name TEXT NOT NULL,
    type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS exercise_tags (
    exercise TEXT NOT NULL,
    tag TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS nutrition (
    date TEXT NOT NULL,
    calories INTEGER
);

CREATE TABLE IF NOT EXISTS measurements (
    date TEXT NOT NULL,
    weight REAL,
    weight_unit TEXT
);

CREATE TABLE IF NOT EXISTS strength_sets (
    date TEXT NOT NULL,
    exercise TEXT NOT NULL,
    weight REAL,
    unit TEXT,
    reps INTEGER
);

CREATE TABLE IF NOT EXISTS endurance_sets (
    date TEXT NOT NULL,
    exercise TEXT NOT NULL,
    distance REAL,
    distance_unit TEXT,
    time REAL,
    time_unit TEXT,
    speed REAL,
    speed_unit TEXT
);
`
)

// Tables lists the tables created by SchemaV1, in creation order.
var Tables = []string{
	"tags",
	"exercises",
	"exercise_tags",
	"nutrition",
	"measurements",
	"strength_sets",
	"endurance_sets",
}
