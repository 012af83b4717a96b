package app

import (
	"database/sql"

	"github.com/penguince/career-survey/config"
	"github.com/penguince/career-survey/mail"
)

type App struct {
	*sql.DB
	Mail mail.Sender
	config.Config
}
