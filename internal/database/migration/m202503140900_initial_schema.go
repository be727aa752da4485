package migration

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/tpanh/rentd/internal/domain"
	"gorm.io/gorm"
)

func m202503140900_initial_schema() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "202503140900",
		Migrate: func(db *gorm.DB) error {
			// it's a good practice to copy the struct inside the function,
			// so side effects are prevented if the original struct changes during the time
			type User struct {
				ID       string `gorm:"type:varchar(50);primary_key"`
				Username string `gorm:"type:varchar(50);uniqueIndex"`
				Password string `gorm:"type:varchar(255)"`
				FullName string `gorm:"type:varchar(100);not null"`
				Email    string `gorm:"type:varchar(255)"`

				Roles  domain.RoleSet    `gorm:"type:text"`
				Status domain.UserStatus `gorm:"type:varchar(20);not null"`
				Active bool              `gorm:"not null"`

				CreatedAt time.Time
				UpdatedAt time.Time
			}

			type Building struct {
				ID   uint64 `gorm:"primary_key;autoIncrement:false"`
				Name string `gorm:"type:varchar(100);not null"`

				ManagerID string `gorm:"type:varchar(50);not null;index"`

				OwnerName  string `gorm:"type:varchar(100)"`
				OwnerPhone string `gorm:"type:varchar(20)"`

				ElecUnitPrice   int
				WaterUnitPrice  int
				WaterCalcMethod domain.WaterCalcMethod `gorm:"type:varchar(20)"`
			}

			type Room struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				BuildingID uint64 `gorm:"not null;index"`
				Building   Building

				RoomNo string `gorm:"type:varchar(20);not null"`
				Price  int

				Status domain.RoomStatus `gorm:"type:varchar(20);not null"`
			}

			type Tenant struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				RoomID uint64 `gorm:"not null;index"`
				Room   Room

				UserID string `gorm:"type:varchar(50);index"`

				Name  string `gorm:"type:varchar(100);not null"`
				Phone string `gorm:"type:varchar(20)"`
				Email string `gorm:"type:varchar(255)"`

				IsContractHolder bool

				StartDate       time.Time
				ContractEndDate *time.Time
				EndDate         *time.Time
			}

			type Invoice struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				RoomID uint64 `gorm:"not null;index"`
				Room   Room

				TenantID uint64 `gorm:"not null"`
				Tenant   Tenant

				Period string `gorm:"type:varchar(7);not null;index"`

				RoomPrice   int
				ElecAmount  int
				WaterAmount int
				TotalAmount int

				Status  domain.InvoiceStatus `gorm:"type:varchar(20);not null"`
				DueDate time.Time

				CreatedAt time.Time
			}

			type UtilityReading struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				RoomID uint64 `gorm:"not null;index"`
				Room   Room

				Month string `gorm:"type:varchar(7);not null;index"`

				ElectricIndex *int
				WaterIndex    *int

				CreatedAt time.Time
				UpdatedAt time.Time
			}

			type TenantInvitation struct {
				ID uint64 `gorm:"primary_key;autoIncrement:false"`

				RoomID uint64 `gorm:"not null;index"`
				Room   Room

				Email string `gorm:"type:varchar(255);not null"`
				Token string `gorm:"type:varchar(64);uniqueIndex"`

				IsContractHolder bool
				ContractEndDate  *time.Time

				Status    domain.InvitationStatus `gorm:"type:varchar(20);not null"`
				ExpiredAt time.Time               `gorm:"not null"`
				InvitedBy string                  `gorm:"type:varchar(50)"`

				CreatedAt time.Time
			}

			return db.AutoMigrate(
				&User{},
				&Building{},
				&Room{},
				&Tenant{},
				&Invoice{},
				&UtilityReading{},
				&TenantInvitation{},
			)
		},
		Rollback: nil,
	}
}
