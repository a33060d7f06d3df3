package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"zari/internal/cameras"
	"zari/internal/menus"
	"zari/internal/reservations"
	"zari/internal/restaurants"
	"zari/internal/shared/config"
	"zari/internal/shared/database"
	"zari/internal/users"
	"zari/pkg/logger"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "qwerty"

type Seeder struct {
	db  *database.DB
	log *logger.Logger
}

type restaurantSeed struct {
	name, cuisine, address, district string
	rating                           float64
	occupancy                        int
	menu                             []menuSeed
}

type menuSeed struct {
	name, description string
	price             int64
	category          menus.Category
}

var restaurantData = []restaurantSeed{
	{"맛있는 비스트로", "이탈리안", "서울시 강남구 123번길", "강남구", 4.7, 45, []menuSeed{
		{"마르게리타 피자", "토마토 소스, 모짜렐라, 바질을 곁들인 클래식 피자", 15000, menus.CategoryMain},
		{"스파게티 카르보나라", "계란, 치즈, 판체타, 후추를 곁들인 파스타", 16000, menus.CategoryMain},
		{"티라미수", "커피와 마스카포네를 곁들인 클래식 이탈리안 디저트", 8000, menus.CategoryDessert},
		{"카프레제 샐러드", "토마토, 모짜렐라, 바질, 발사믹 글레이즈", 12000, menus.CategoryAppetizer},
		{"레몬 소르베", "상큼한 레몬 맛의 이탈리안 소르베", 6000, menus.CategoryDessert},
	}},
	{"스파이스 가든", "인도 요리", "서울시 서초구 456번길", "서초구", 4.5, 75, []menuSeed{
		{"버터 치킨", "토마토 크림 커리와 탄두리 치킨", 17000, menus.CategoryMain},
		{"갈릭 난", "마늘 버터를 바른 화덕 난", 4000, menus.CategorySide},
		{"망고 라씨", "망고 요거트 음료", 6000, menus.CategoryDrink},
	}},
	{"스시 파라다이스", "일식", "서울시 송파구 789번길", "송파구", 4.8, 90, []menuSeed{
		{"모둠 초밥", "오늘의 생선 초밥 12피스", 28000, menus.CategoryMain},
		{"연어 사시미", "두툼하게 썬 연어 사시미", 22000, menus.CategoryAppetizer},
		{"미소 된장국", "두부와 미역을 넣은 된장국", 3000, menus.CategorySide},
	}},
	{"서울 바베큐", "한식", "서울시 마포구 567번길", "마포구", 4.6, 30, []menuSeed{
		{"한우 등심", "숯불에 굽는 1++ 등심 150g", 39000, menus.CategoryMain},
		{"돼지 목살", "두툼한 생목살 200g", 16000, menus.CategoryMain},
		{"된장찌개", "차돌을 넣은 된장찌개", 7000, menus.CategorySide},
	}},
	{"차이나 하우스", "중식", "서울시 중구 890번길", "중구", 4.4, 65, []menuSeed{
		{"짜장면", "춘장에 볶은 돼지고기와 양파", 8000, menus.CategoryMain},
		{"탕수육", "바삭한 돼지고기 튀김과 새콤한 소스", 22000, menus.CategoryMain},
		{"군만두", "노릇하게 구운 만두 8개", 7000, menus.CategoryAppetizer},
	}},
	{"파리지앵", "프랑스 요리", "서울시 용산구 234번길", "용산구", 4.9, 85, []menuSeed{
		{"뵈프 부르기뇽", "레드와인에 졸인 소고기 스튜", 34000, menus.CategoryMain},
		{"어니언 수프", "그뤼에르 치즈를 올린 양파 수프", 12000, menus.CategoryAppetizer},
		{"크렘 브륄레", "캐러멜을 입힌 바닐라 커스터드", 9000, menus.CategoryDessert},
	}},
	{"강남 치킨", "치킨", "서울시 강남구 345번길", "강남구", 4.3, 55, []menuSeed{
		{"후라이드 치킨", "바삭한 한 마리 후라이드", 19000, menus.CategoryMain},
		{"양념 치킨", "달콤 매콤한 양념 치킨", 20000, menus.CategoryMain},
		{"치즈볼", "모짜렐라 치즈볼 5개", 5000, menus.CategorySide},
		{"생맥주", "500cc 생맥주", 5000, menus.CategoryDrink},
	}},
	{"종로 냉면", "한식", "서울시 종로구 678번길", "종로구", 4.7, 70, []menuSeed{
		{"물냉면", "평양식 메밀 물냉면", 13000, menus.CategoryMain},
		{"비빔냉면", "매콤한 양념의 비빔냉면", 13000, menus.CategoryMain},
		{"녹두전", "바삭하게 부친 녹두 빈대떡", 15000, menus.CategoryAppetizer},
	}},
	{"마포 돈까스", "일식", "서울시 마포구 901번길", "마포구", 4.2, 40, []menuSeed{
		{"로스카츠", "두툼한 등심 돈까스", 12000, menus.CategoryMain},
		{"히레카츠", "부드러운 안심 돈까스", 13000, menus.CategoryMain},
		{"카레 추가", "일본식 카레 소스", 3000, menus.CategorySide},
	}},
}

var cameraData = []struct {
	name, location string
	camType        cameras.Type
	url            string
	status         cameras.Status
}{
	{"메인 홀 카메라", "메인 홀", cameras.TypeIP, "http://192.168.1.100:8080/video", cameras.StatusOnline},
	{"입구 카메라", "입구", cameras.TypeRTSP, "rtsp://192.168.1.101:554/stream", cameras.StatusOnline},
	{"주방 카메라", "주방", cameras.TypeUSB, "usb://camera-3", cameras.StatusOnline},
	{"테라스 카메라", "테라스", cameras.TypeIP, "http://192.168.1.102:8080/video", cameras.StatusOffline},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewWithWriter(os.Stdout, cfg.LogLevel, false).WithComponent("seed")

	db, err := database.InitDB(cfg, log)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seeder := &Seeder{db: db, log: log}

	log.Info("cleaning database")
	if err := seeder.CleanDatabase(); err != nil {
		log.Error("failed to clean database", "error", err)
		os.Exit(1)
	}

	log.Info("seeding database")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Error("failed to seed database", "error", err)
		os.Exit(1)
	}
	log.Info("seeding completed", "password", seedPassword)
}

// CleanDatabase truncates the seeded tables, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reservation_items",
		"reservations",
		"cameras",
		"menu_items",
		"restaurants",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	for _, table := range tables {
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return tx.Commit().Error
}

func (s *Seeder) SeedAll(ctx context.Context) error {
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	owner := userIDs["owner"]
	restaurantIDs, err := s.SeedRestaurants(owner)
	if err != nil {
		return fmt.Errorf("failed to seed restaurants: %w", err)
	}

	items, err := s.SeedMenus(restaurantIDs)
	if err != nil {
		return fmt.Errorf("failed to seed menus: %w", err)
	}

	if err := s.SeedCameras(restaurantIDs[0]); err != nil {
		return fmt.Errorf("failed to seed cameras: %w", err)
	}

	if err := s.SeedReservations(restaurantIDs[0], userIDs["customer"], items[restaurantIDs[0]]); err != nil {
		return fmt.Errorf("failed to seed reservations: %w", err)
	}

	// drafts, sessions and cached listings refer to the old rows
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		s.log.Warn("failed to clear Redis", "error", err)
	}
	return nil
}

// SeedUsers creates one business owner and two customers
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key, name, email string
		role             users.Role
	}{
		{"owner", "김사장", "owner@zari.kr", users.RoleBusiness},
		{"customer", "이고객", "customer@zari.kr", users.RoleCustomer},
		{"guest", "박손님", "guest@zari.kr", users.RoleCustomer},
	}

	ids := make(map[string]uuid.UUID, len(usersData))
	for _, u := range usersData {
		user := users.User{
			ID:       uuid.New(),
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
			Role:     u.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		ids[u.key] = user.ID
		s.log.Info("created user", "email", user.Email, "role", user.Role)
	}
	return ids, nil
}

// SeedRestaurants creates the catalog; the owner manages the first one
func (s *Seeder) SeedRestaurants(ownerID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(restaurantData))
	now := time.Now()
	for i, r := range restaurantData {
		restaurant := restaurants.Restaurant{
			ID:                 uuid.New(),
			Name:               r.name,
			Slug:               fmt.Sprintf("%s-%d", slug.Make(r.name), i+1),
			Cuisine:            r.cuisine,
			Rating:             r.rating,
			Image:              "/placeholder.svg?height=200&width=300",
			Address:            r.address,
			District:           r.district,
			Occupancy:          r.occupancy,
			OccupancyUpdatedAt: &now,
		}
		if i == 0 {
			restaurant.OwnerID = &ownerID
		}
		if err := s.db.PostgreSQL.Create(&restaurant).Error; err != nil {
			return nil, fmt.Errorf("failed to create restaurant %s: %w", r.name, err)
		}
		ids = append(ids, restaurant.ID)
	}
	s.log.Info("created restaurants", "count", len(ids))
	return ids, nil
}

func (s *Seeder) SeedMenus(restaurantIDs []uuid.UUID) (map[uuid.UUID][]menus.MenuItem, error) {
	out := make(map[uuid.UUID][]menus.MenuItem, len(restaurantIDs))
	total := 0
	for i, r := range restaurantData {
		restaurantID := restaurantIDs[i]
		for _, m := range r.menu {
			item := menus.MenuItem{
				ID:           uuid.New(),
				RestaurantID: restaurantID,
				Name:         m.name,
				Description:  m.description,
				Price:        m.price,
				Image:        "/placeholder.svg?height=100&width=100",
				Category:     m.category,
				Available:    true,
			}
			if err := s.db.PostgreSQL.Create(&item).Error; err != nil {
				return nil, fmt.Errorf("failed to create menu item %s: %w", m.name, err)
			}
			out[restaurantID] = append(out[restaurantID], item)
			total++
		}
	}
	s.log.Info("created menu items", "count", total)
	return out, nil
}

func (s *Seeder) SeedCameras(restaurantID uuid.UUID) error {
	for _, c := range cameraData {
		camera := cameras.Camera{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Name:         c.name,
			Location:     c.location,
			Type:         c.camType,
			URL:          c.url,
			Status:       c.status,
			Enabled:      true,
		}
		if err := s.db.PostgreSQL.Create(&camera).Error; err != nil {
			return fmt.Errorf("failed to create camera %s: %w", c.name, err)
		}
	}
	s.log.Info("created cameras", "count", len(cameraData))
	return nil
}

// SeedReservations books a few tables at the owner's restaurant so the
// business views are not empty
func (s *Seeder) SeedReservations(restaurantID, customerID uuid.UUID, items []menus.MenuItem) error {
	if len(items) < 3 {
		return fmt.Errorf("restaurant %s has too few menu items", restaurantID)
	}
	today := time.Now()

	samples := []struct {
		dayOffset int
		clock     string
		seats     []string
		lines     map[int]int
		status    reservations.Status
	}{
		{-3, "18:30", []string{"A1", "A2"}, map[int]int{0: 1, 1: 1}, reservations.StatusCompleted},
		{-1, "12:00", []string{"B3"}, map[int]int{3: 1}, reservations.StatusCancelled},
		{0, "19:00", []string{"C1", "C2", "C3"}, map[int]int{0: 2, 2: 3}, reservations.StatusConfirmed},
		{1, "18:00", []string{"D5", "D4"}, map[int]int{1: 2}, reservations.StatusPending},
	}

	for i, sample := range samples {
		date := today.AddDate(0, 0, sample.dayOffset).Format(reservations.DateLayout)
		scheduledAt, err := reservations.ParseSchedule(date, sample.clock)
		if err != nil {
			return err
		}

		reservation := reservations.Reservation{
			ID:           uuid.New(),
			Reference:    fmt.Sprintf("RSV-%s-SEED%02d", today.Format("20060102"), i+1),
			RestaurantID: restaurantID,
			CustomerID:   &customerID,
			CustomerName: "이고객",
			Date:         date,
			Time:         sample.clock,
			ScheduledAt:  scheduledAt,
			Seats:        pq.StringArray(sample.seats),
			Status:       sample.status,
		}
		for idx, qty := range sample.lines {
			item := items[idx]
			reservation.Items = append(reservation.Items, reservations.ReservationItem{
				MenuItemID: item.ID.String(),
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   qty,
			})
			reservation.TotalAmount += item.Price * int64(qty)
		}
		if sample.status == reservations.StatusCancelled {
			cancelledAt := scheduledAt.Add(-2 * time.Hour)
			reservation.CancelledAt = &cancelledAt
		}

		if err := s.db.PostgreSQL.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation %s: %w", reservation.Reference, err)
		}
	}
	s.log.Info("created reservations", "count", len(samples))
	return nil
}
