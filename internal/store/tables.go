package store

import "fmt"

// Table names one of the three managed tables. Only these identifiers, and
// the columns listed for them below, may appear in a dynamically assembled
// query; everything else is bound as a parameter.
type Table string

const (
	TableBots      Table = "Bots"
	TableKnowledge Table = "KnowledgeBase"
	TableLinks     Table = "BotKnowledgeLink"
)

var botColumns = []string{
	"Bot_ID",
	"Botperson_Name",
	"Botperson_Role",
	"Role",
	"Usage",
	"Sector",
	"Prompt",
	"Total_Interactions",
	"Positive_Feedback_Count",
	"Negative_Feedback_Count",
	"Level_of_Access",
	"Active_Status",
	"Version",
	"Owner_Maintainer",
	"Foundation_Business",
	"Foundation_Name",
	"Last_Updated",
}

var knowledgeColumns = []string{"ID", "Content", "Metadata"}

var linkColumns = []string{"Bot_ID", "KnowledgeBase_ID"}

var tableColumns = map[Table][]string{
	TableBots:      botColumns,
	TableKnowledge: knowledgeColumns,
	TableLinks:     linkColumns,
}

// Tables returns the managed tables in display order.
func Tables() []Table {
	return []Table{TableBots, TableKnowledge, TableLinks}
}

// Columns returns the table's column names in schema order.
func (t Table) Columns() []string {
	return tableColumns[t]
}

// KeyColumn returns the primary key column of the table.
func (t Table) KeyColumn() string {
	switch t {
	case TableBots:
		return "Bot_ID"
	case TableKnowledge:
		return "ID"
	}
	return "Bot_ID"
}

// RequiredColumn returns the column a rendered view must always include.
func (t Table) RequiredColumn() string {
	return t.KeyColumn()
}

// HasColumn reports whether name is a column of the table.
func (t Table) HasColumn(name string) bool {
	for _, c := range tableColumns[t] {
		if c == name {
			return true
		}
	}
	return false
}

func (t Table) check() error {
	if _, ok := tableColumns[t]; !ok {
		return fmt.Errorf("%w: table %q", ErrUnknownIdentifier, string(t))
	}
	return nil
}

func (t Table) checkColumn(name string) error {
	if !t.HasColumn(name) {
		return fmt.Errorf("%w: column %q in table %q", ErrUnknownIdentifier, name, string(t))
	}
	return nil
}
