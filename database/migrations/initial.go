package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/pkg/migration"
	"github.com/shashiranjanraj/allthebeans/pkg/queue"
)

func init() {
	migration.Register("20260301000000_create_beans_table", &CreateBeansTable{})
	migration.Register("20260301000001_create_bean_of_the_day_table", &CreateBeanOfTheDayTable{})
	migration.Register("20260301000002_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000003_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: beans --------

type CreateBeansTable struct{}

func (m *CreateBeansTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Bean{})
}

func (m *CreateBeansTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("beans")
}

// -------- 0002: bean_of_the_day --------

type CreateBeanOfTheDayTable struct{}

func (m *CreateBeanOfTheDayTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.BeanOfTheDay{})
}

func (m *CreateBeanOfTheDayTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("bean_of_the_day")
}

// -------- 0003: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0004: failed_jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
