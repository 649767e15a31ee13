package birthday

import (
	domain "birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	"birthdaybot/internal/db"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const OWNER = domain.ChatID(111)

var NOW = time.Date(2023, 3, 14, 6, 45, 0, 0, time.UTC)

type testBirthdaySuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	repository *PgxBirthdayRepository
}

func (suite *testBirthdaySuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repository = NewPgxBirthdayRepository(suite.pool)
}

func (suite *testBirthdaySuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testBirthdaySuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxBirthdayRepository(t *testing.T) {
	suite.Run(t, new(testBirthdaySuite))
}

func (s *testBirthdaySuite) create(owner domain.ChatID, name string, date string) domain.Record {
	d, err := dates.Parse(date)
	s.Require().Nil(err)
	rec, err := s.repository.Create(context.Background(), domain.CreateInput{
		Owner:     owner,
		Name:      name,
		Date:      d,
		CreatedAt: NOW,
	})
	s.Require().Nil(err)
	return rec
}

func (s *testBirthdaySuite) TestCreateAndGetByName() {
	created := s.create(OWNER, "Alice", "14-03-1990")
	s.NotZero(created.ID)

	rec, err := s.repository.GetByName(context.Background(), OWNER, "Alice")
	s.Nil(err)
	s.Equal(created.ID, rec.ID)
	s.Equal(OWNER, rec.Owner)
	s.Equal("Alice", rec.Name)
	s.Equal("14-03-1990", rec.Date.String())
	s.Equal(domain.ServiceNone, rec.Service)
}

func (s *testBirthdaySuite) TestCreateWithServiceTag() {
	d, err := dates.Parse("01-01-2000")
	s.Require().Nil(err)
	_, err = s.repository.Create(context.Background(), domain.CreateInput{
		Owner:     OWNER,
		Name:      "Bob",
		Date:      d,
		Service:   domain.ServiceTelegram,
		Handle:    "bob123",
		CreatedAt: NOW,
	})
	s.Nil(err)

	rec, err := s.repository.GetByName(context.Background(), OWNER, "Bob")
	s.Nil(err)
	s.Equal(domain.ServiceTelegram, rec.Service)
	s.Equal("bob123", rec.Handle)
}

func (s *testBirthdaySuite) TestCreateDuplicateName() {
	s.create(OWNER, "Alice", "14-03-1990")

	d, err := dates.Parse("01-01-2000")
	s.Require().Nil(err)
	_, err = s.repository.Create(context.Background(), domain.CreateInput{
		Owner:     OWNER,
		Name:      "Alice",
		Date:      d,
		CreatedAt: NOW,
	})
	s.ErrorIs(err, domain.ErrAlreadyExists)

	records, err := s.repository.List(context.Background(), OWNER)
	s.Nil(err)
	s.Len(records, 1)
	s.Equal("14-03-1990", records[0].Date.String())
}

func (s *testBirthdaySuite) TestSameNameDifferentOwners() {
	s.create(1, "Carol", "14-03-1990")
	s.create(2, "Carol", "01-01-2000")

	rec, err := s.repository.GetByName(context.Background(), 1, "Carol")
	s.Nil(err)
	s.Equal("14-03-1990", rec.Date.String())

	rec, err = s.repository.GetByName(context.Background(), 2, "Carol")
	s.Nil(err)
	s.Equal("01-01-2000", rec.Date.String())
}

func (s *testBirthdaySuite) TestGetByNameMiss() {
	_, err := s.repository.GetByName(context.Background(), OWNER, "Nobody")
	s.ErrorIs(err, domain.ErrDoesNotExist)
}

func (s *testBirthdaySuite) TestListScopedByOwner() {
	s.create(OWNER, "Alice", "14-03-1990")
	s.create(OWNER, "Bob", "01-01-2000")
	s.create(222, "Carol", "20-11-1985")

	records, err := s.repository.List(context.Background(), OWNER)
	s.Nil(err)
	s.Len(records, 2)
	for _, rec := range records {
		s.Equal(OWNER, rec.Owner)
	}
}

func (s *testBirthdaySuite) TestListByDayIgnoresYear() {
	s.create(OWNER, "Alice", "14-03-1990")
	s.create(OWNER, "Newborn", "14-03-2023")
	s.create(OWNER, "Bob", "15-03-1990")

	records, err := s.repository.ListByDay(context.Background(), OWNER, 14, 3)
	s.Nil(err)
	s.Len(records, 2)
}

func (s *testBirthdaySuite) TestListByDayLeapDay() {
	s.create(OWNER, "Leap", "29-02-2000")

	records, err := s.repository.ListByDay(context.Background(), OWNER, 29, 2)
	s.Nil(err)
	s.Len(records, 1)

	records, err = s.repository.ListByDay(context.Background(), OWNER, 28, 2)
	s.Nil(err)
	s.Len(records, 0)
}

func (s *testBirthdaySuite) TestDelete() {
	s.create(OWNER, "Alice", "14-03-1990")

	err := s.repository.Delete(context.Background(), OWNER, "Alice")
	s.Nil(err)

	_, err = s.repository.GetByName(context.Background(), OWNER, "Alice")
	s.ErrorIs(err, domain.ErrDoesNotExist)
}

func (s *testBirthdaySuite) TestDeleteMiss() {
	s.create(OWNER, "Alice", "14-03-1990")

	err := s.repository.Delete(context.Background(), OWNER, "Bob")
	s.ErrorIs(err, domain.ErrDoesNotExist)

	records, err := s.repository.List(context.Background(), OWNER)
	s.Nil(err)
	s.Len(records, 1)
}

func (s *testBirthdaySuite) TestOwners() {
	s.create(1, "Alice", "14-03-1990")
	s.create(1, "Bob", "01-01-2000")
	s.create(2, "Carol", "20-11-1985")

	owners, err := s.repository.Owners(context.Background())
	s.Nil(err)
	s.Len(owners, 2)
	s.Contains(owners, domain.ChatID(1))
	s.Contains(owners, domain.ChatID(2))
}
