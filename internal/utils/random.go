package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

var commonSurnames = []string{
	"Smith", "Jones", "Williams", "Taylor", "Brown", "Davies", "Evans", "Wilson", "Thomas", "Roberts",
	"Johnson", "Lewis", "Walker", "Robinson", "Wood", "Thompson", "White", "Watson", "Jackson", "Wright",
}
var commonGivenNames = []string{
	"Oliver", "Amelia", "George", "Isla", "Harry", "Ava", "Noah", "Emily", "Jack", "Sophia",
	"Charlie", "Grace", "Jacob", "Mia", "Thomas", "Poppy", "Oscar", "Ella", "William", "Lily",
	"James", "Evie", "Henry", "Freya", "Leo", "Alice", "Alfie", "Florence", "Joshua", "Daisy",
}

func GenerateRandomFullName() string {
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return given + " " + surname
}

var staffRoles = []domain.Role{
	domain.RoleHomeManager,
	domain.RoleSeniorStaff,
	domain.RoleSupportWorker,
}

func GenerateRandomRole() domain.Role {
	return staffRoles[rand.Intn(len(staffRoles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var homeNamePrefixes = []string{"Rosewood", "Oakfield", "Willowbrook", "Maple", "Birchwood", "Lavender", "Primrose", "Hawthorn"}
var homeNameSuffixes = []string{"House", "Lodge", "Court", "Manor", "Gardens"}

func GenerateRandomHome() *domain.Home {
	return &domain.Home{
		Name: homeNamePrefixes[rand.Intn(len(homeNamePrefixes))] + " " +
			homeNameSuffixes[rand.Intn(len(homeNameSuffixes))] + " " + GenerateRandomID(0, 3),
		Address: fmt.Sprintf("%d High Street", rand.Intn(200)+1),
		Phone:   fmt.Sprintf("01632 %06d", rand.Intn(1000000)),
	}
}

var serviceNames = []string{"Residential Care", "Nursing", "Dementia Care", "Respite", "Day Care", "Domiciliary"}

func GenerateRandomService(homeID int64) *domain.Service {
	return &domain.Service{
		HomeID: homeID,
		Name:   serviceNames[rand.Intn(len(serviceNames))] + " " + GenerateRandomID(0, 3),
	}
}

// standard care-home shift patterns, picked at random for seeded templates
var fixtureShiftPatterns = []struct {
	Start     string
	End       string
	ShiftType domain.ShiftType
}{
	{"07:00", "15:00", domain.ShiftTypeMorning},
	{"08:00", "20:00", domain.ShiftTypeLongDay},
	{"14:00", "22:00", domain.ShiftTypeAfternoon},
	{"20:00", "08:00", domain.ShiftTypeNight},
	{"22:00", "06:00", domain.ShiftTypeNight},
}

func GenerateRandomWeeklyScheduleTemplate(homeID int64, serviceIDs []int64) *domain.WeeklyScheduleTemplate {
	tpl := domain.NewDefaultWeeklyScheduleTemplate(homeID)

	for day := range tpl.Schedule {
		patternsNum := rand.Intn(3) + 1
		shifts := make([]domain.ShiftPattern, 0, patternsNum)

		for i := 0; i < patternsNum; i++ {
			fixture := fixtureShiftPatterns[rand.Intn(len(fixtureShiftPatterns))]
			start, _ := domain.ParseTimeOfDay(fixture.Start)
			end, _ := domain.ParseTimeOfDay(fixture.End)

			shifts = append(shifts, domain.ShiftPattern{
				ServiceID:          serviceIDs[rand.Intn(len(serviceIDs))],
				StartTime:          start,
				EndTime:            end,
				RequiredStaffCount: int32(rand.Intn(3) + 1),
				ShiftType:          fixture.ShiftType,
			})
		}

		tpl.Schedule[day].Shifts = shifts
	}

	return tpl
}

func GenerateRandomTimeOffRequest(userID int64, weekStart domain.Date) *domain.TimeOffRequest {
	start := weekStart.AddDays(rand.Intn(7))
	end := start.AddDays(rand.Intn(3))

	return &domain.TimeOffRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Status:    domain.TimeOffPending,
		Reason:    "annual leave",
	}
}
