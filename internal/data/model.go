package data

import (
	"time"
)

// User represents the users table
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null;size:64"`
	Email        string    `gorm:"uniqueIndex;not null;size:64"`
	PasswordHash []byte    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Director represents the directors table
type Director struct {
	ID       uint   `gorm:"primaryKey"`
	FullName string `gorm:"uniqueIndex;not null;size:255"`
}

func (Director) TableName() string {
	return "directors"
}

// Genre represents the genres table. Directors is filled through the
// genre_directors join table.
type Genre struct {
	ID        uint       `gorm:"primaryKey"`
	GenreName string     `gorm:"uniqueIndex;not null;size:64"`
	Directors []Director `gorm:"many2many:genre_directors"`
}

func (Genre) TableName() string {
	return "genres"
}

// GenreDirector is one row of the genre/director association.
type GenreDirector struct {
	GenreID    uint `gorm:"primaryKey"`
	DirectorID uint `gorm:"primaryKey"`
}

func (GenreDirector) TableName() string {
	return "genre_directors"
}

// Movie represents the movies table
type Movie struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null;size:255"`
	Rating     int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	GenreID    uint   `gorm:"not null;index"`
	DirectorID uint   `gorm:"not null;index"`
}

func (Movie) TableName() string {
	return "movies"
}

// Actor represents the actors table. An actor row is one credit: the same
// name may appear once per movie.
type Actor struct {
	ID        uint   `gorm:"primaryKey"`
	ActorName string `gorm:"not null;size:255;uniqueIndex:uq_actor_movie;index:idx_actors_name"`
	MovieID   uint   `gorm:"not null;uniqueIndex:uq_actor_movie"`
}

func (Actor) TableName() string {
	return "actors"
}

// movieRow is the scan target of the movie listing joins.
type movieRow struct {
	Name     string
	Rating   int
	Director string
	Genre    string
}
