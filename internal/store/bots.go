package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gochat247/botadmin/internal/model"
)

// InsertBot appends a new bot and returns its generated Bot_ID.
func (s *Store) InsertBot(ctx context.Context, b model.Bot) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO Bots (Botperson_Name, Botperson_Role, Role, Usage, Sector, Prompt,
			Total_Interactions, Positive_Feedback_Count, Negative_Feedback_Count,
			Level_of_Access, Active_Status, Version, Owner_Maintainer,
			Foundation_Business, Foundation_Name, Last_Updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Name, nullable(b.PersonRole), nullable(b.Role), nullable(b.Usage),
		nullable(b.Sector), nullable(b.Prompt),
		b.TotalInteractions, b.PositiveFeedbackCount, b.NegativeFeedbackCount,
		nullable(b.LevelOfAccess), nullable(b.ActiveStatus), nullable(b.Version),
		nullable(b.OwnerMaintainer), nullable(b.FoundationBusiness),
		nullable(b.FoundationName), nullable(b.LastUpdated))
	if err != nil {
		return 0, classify("insert Bots", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify("insert Bots", err)
	}

	s.invalidate()
	return id, nil
}

// GetBotByName resolves a bot by its unique display name.
func (s *Store) GetBotByName(ctx context.Context, name string) (*model.Bot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT Bot_ID, Botperson_Name, Botperson_Role, Role, Usage, Sector, Prompt,
			Total_Interactions, Positive_Feedback_Count, Negative_Feedback_Count,
			Level_of_Access, Active_Status, Version, Owner_Maintainer,
			Foundation_Business, Foundation_Name, Last_Updated
		 FROM Bots WHERE Botperson_Name = ?`, name)

	b, err := scanBot(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bot %q not found", name)
	}
	if err != nil {
		return nil, classify("read Bots", err)
	}
	return b, nil
}

// ListBots returns all bots ordered by key.
func (s *Store) ListBots(ctx context.Context) ([]model.Bot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Bot_ID, Botperson_Name, Botperson_Role, Role, Usage, Sector, Prompt,
			Total_Interactions, Positive_Feedback_Count, Negative_Feedback_Count,
			Level_of_Access, Active_Status, Version, Owner_Maintainer,
			Foundation_Business, Foundation_Name, Last_Updated
		 FROM Bots ORDER BY Bot_ID`)
	if err != nil {
		return nil, classify("read Bots", err)
	}
	defer rows.Close()

	var bots []model.Bot
	for rows.Next() {
		b, err := scanBot(rows)
		if err != nil {
			return nil, classify("read Bots", err)
		}
		bots = append(bots, *b)
	}
	return bots, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBot(row scanner) (*model.Bot, error) {
	var b model.Bot
	var personRole, role, usage, sector, prompt sql.NullString
	var access, status, version, owner, business, foundation, updated sql.NullString
	var total, positive, negative sql.NullInt64

	err := row.Scan(
		&b.ID, &b.Name, &personRole, &role, &usage, &sector, &prompt,
		&total, &positive, &negative,
		&access, &status, &version, &owner, &business, &foundation, &updated,
	)
	if err != nil {
		return nil, err
	}

	b.PersonRole = personRole.String
	b.Role = role.String
	b.Usage = usage.String
	b.Sector = sector.String
	b.Prompt = prompt.String
	b.TotalInteractions = total.Int64
	b.PositiveFeedbackCount = positive.Int64
	b.NegativeFeedbackCount = negative.Int64
	b.LevelOfAccess = access.String
	b.ActiveStatus = status.String
	b.Version = version.String
	b.OwnerMaintainer = owner.String
	b.FoundationBusiness = business.String
	b.FoundationName = foundation.String
	b.LastUpdated = updated.String

	return &b, nil
}
