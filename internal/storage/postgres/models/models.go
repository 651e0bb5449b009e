package models

import "moviehub/proj/internal/storage/postgres"

type Models struct {
	Review *ReviewModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Review: &ReviewModel{db.Conn},
	}
}
