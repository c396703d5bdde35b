package record

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"time"

	"git.lost.host/meutraa/eotb/internal/battle"
	"git.lost.host/meutraa/eotb/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// History is one stored battle.
type History struct {
	ID       string
	Sum      string
	PlayedAt time.Time
	Rules    battle.Rules
	Result   battle.Result
	End      float64 // last beat played
	Inputs   []game.Input
}

// Store keeps battle histories in a sqlite database.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, errors.Wrapf(err, "open %v", path)
	}

	initStatement := `
	create table if not exists battles
	  (
		  id text not null primary key,
		  sum text not null,
		  played_at integer,
		  rules text,
		  result integer,
		  end_beat real,
		  inputs blob
	  );
	create index if not exists battles_sum on battles(sum);
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "create battles table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashChart identifies a chart by its content.
func HashChart(c *game.Chart) (string, error) {
	data, err := json.Marshal(c)
	if nil != err {
		return "", errors.Wrap(err, "marshal chart")
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Save stores a battle and returns its id.
func (s *Store) Save(c *game.Chart, rules battle.Rules, inputs []game.Input, end float64, result battle.Result) (string, error) {
	sum, err := HashChart(c)
	if nil != err {
		return "", err
	}
	rs, err := json.Marshal(rules)
	if nil != err {
		return "", errors.Wrap(err, "marshal rules")
	}
	data, err := json.Marshal(compactInputs(inputs))
	if nil != err {
		return "", errors.Wrap(err, "marshal inputs")
	}
	id := uuid.NewString()
	_, err = s.db.Exec(
		"insert into battles(id, sum, played_at, rules, result, end_beat, inputs) values(?, ?, ?, ?, ?, ?, ?)",
		id, sum, time.Now().Unix(), string(rs), int(result), end, data,
	)
	if nil != err {
		return "", errors.Wrap(err, "save battle")
	}
	return id, nil
}

// Load returns every stored battle of the chart, oldest first.
func (s *Store) Load(c *game.Chart) ([]History, error) {
	sum, err := HashChart(c)
	if nil != err {
		return nil, err
	}
	rows, err := s.db.Query(
		"select id, played_at, rules, result, end_beat, inputs from battles where sum = ? order by played_at, rowid",
		sum,
	)
	if nil != err {
		return nil, errors.Wrap(err, "load battles")
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var (
			h        = History{Sum: sum}
			playedAt int64
			rules    string
			result   int
			data     []byte
		)
		if err := rows.Scan(&h.ID, &playedAt, &rules, &result, &h.End, &data); nil != err {
			return nil, errors.Wrap(err, "scan battle")
		}
		if err := json.Unmarshal([]byte(rules), &h.Rules); nil != err {
			return nil, errors.Wrapf(err, "battle %v rules", h.ID)
		}
		var ins []InputsCompact
		if err := json.Unmarshal(data, &ins); nil != err {
			return nil, errors.Wrapf(err, "battle %v inputs", h.ID)
		}
		h.PlayedAt = time.Unix(playedAt, 0)
		h.Result = battle.Result(result)
		h.Inputs = uncompactInputs(ins)
		histories = append(histories, h)
	}
	return histories, errors.WithStack(rows.Err())
}
