package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"sar-ambalaj-backend/internal/config"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
)

type testServer struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger.Log.SetOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	if err := database.Connect(sqlite.Open(dsn)); err != nil {
		t.Fatalf("veritabanı açılamadı: %v", err)
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{
		JWTSecret:          strings.Repeat("k", 32),
		CORSOrigins:        "*",
		DefaultOverheadPct: 15,
		DefaultProfitPct:   30,
	}
	return &testServer{t: t, app: New(cfg)}
}

func (s *testServer) do(method, path string, body any) (int, []byte) {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("gövde hazırlanamadı: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.app.Test(req, -1)
	if err != nil {
		s.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		s.t.Fatalf("yanıt okunamadı: %v", err)
	}
	return resp.StatusCode, out
}

func (s *testServer) expect(method, path string, body any, status int, out any) {
	s.t.Helper()
	code, raw := s.do(method, path, body)
	if code != status {
		s.t.Fatalf("%s %s: status %d, want %d: %s", method, path, code, status, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			s.t.Fatalf("%s %s: yanıt çözülemedi: %v: %s", method, path, err, raw)
		}
	}
}

func (s *testServer) login(username, password string) {
	s.t.Helper()
	s.token = ""
	var resp struct {
		Token string `json:"token"`
	}
	s.expect("POST", "/api/auth/login", fiber.Map{"username": username, "password": password}, fiber.StatusOK, &resp)
	if resp.Token == "" {
		s.t.Fatalf("token boş")
	}
	s.token = resp.Token
}

// loggedInAdmin ilk admini oluşturup onunla giriş yapar.
func loggedInAdmin(t *testing.T) *testServer {
	s := newTestServer(t)
	s.expect("POST", "/api/auth/bootstrap-admin", fiber.Map{
		"username": "Admin",
		"name":     "Fabrika Yöneticisi",
		"password": "gizli-sifre",
	}, fiber.StatusCreated, nil)
	s.login("admin", "gizli-sifre")
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Abs(b))
}

func TestAuthFlow(t *testing.T) {
	s := loggedInAdmin(t)

	var me struct {
		Username     string `json:"username"`
		Role         string `json:"role"`
		PasswordHash string `json:"password_hash"`
	}
	s.expect("GET", "/api/auth/me", nil, fiber.StatusOK, &me)
	if me.Username != "admin" || me.Role != "admin" || me.PasswordHash != "" {
		t.Fatalf("me yanıtı hatalı: %+v", me)
	}

	s.token = ""
	s.expect("POST", "/api/auth/bootstrap-admin", fiber.Map{
		"username": "ikinci", "name": "İkinci", "password": "123456",
	}, fiber.StatusForbidden, nil)
	s.expect("POST", "/api/auth/login", fiber.Map{"username": "admin", "password": "yanlis"}, fiber.StatusUnauthorized, nil)
	s.expect("GET", "/api/production", nil, fiber.StatusUnauthorized, nil)

	s.token = "bozuk.token.degeri"
	s.expect("GET", "/api/production", nil, fiber.StatusUnauthorized, nil)
}

func TestValidationErrorFields(t *testing.T) {
	s := loggedInAdmin(t)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	s.expect("POST", "/api/production", fiber.Map{"machine": "M1"}, fiber.StatusBadRequest, &resp)
	if resp.Fields["width_cm"] != "gt" || resp.Fields["date"] != "required" {
		t.Fatalf("alan hataları beklenir: %+v", resp)
	}
	if _, ok := resp.Fields["machine"]; ok {
		t.Fatalf("dolu alan hata vermemeli: %+v", resp.Fields)
	}

	s.expect("POST", "/api/production", fiber.Map{
		"date": "09.12.2025", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 1,
	}, fiber.StatusBadRequest, nil)
}

type productionResp struct {
	ID            uint    `json:"id"`
	BatchCode     string  `json:"batch_code"`
	M2            float64 `json:"m2"`
	SpoolType     string  `json:"spool_type"`
	ColorCategory string  `json:"color_category"`
}

func TestProductionShipmentStock(t *testing.T) {
	s := loggedInAdmin(t)

	var p productionResp
	s.expect("POST", "/api/production", fiber.Map{
		"date": "2025-12-09", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 50,
		"spool_type": "Masura 100", "color": "Doğal", "m2": 123456,
	}, fiber.StatusCreated, &p)
	if p.BatchCode == "" || p.M2 != 150 || p.SpoolType != "MASURA 100" || p.ColorCategory != "Doğal" {
		t.Fatalf("üretim kaydı hatalı: %+v", p)
	}

	s.expect("POST", "/api/shipments", fiber.Map{
		"date": "2025-12-10", "customer": "ABC Ambalaj", "type": "Normal",
		"size_spec": "2mm 100cm", "quantity": 1, "color": "Doğal",
		"production_batch_code": "olmayan-kod",
	}, fiber.StatusBadRequest, nil)

	s.expect("POST", "/api/shipments", fiber.Map{
		"date": "2025-12-10", "customer": "ABC Ambalaj", "type": "Normal",
		"size_spec": "2mm 100cm", "quantity": 20, "color": "Doğal",
		"production_batch_code": p.BatchCode, "exit_time": "14:30",
	}, fiber.StatusCreated, nil)

	s.expect("POST", "/api/shipments", fiber.Map{
		"date": "2025-12-10", "customer": "XYZ", "type": "Normal",
		"size_spec": "150cm", "quantity": 3, "color": "Doğal",
	}, fiber.StatusCreated, nil)

	var report struct {
		Entries []struct {
			Remaining     int     `json:"remaining"`
			AreaRemaining float64 `json:"area_remaining_m2"`
		} `json:"entries"`
		TotalRemaining int `json:"total_remaining"`
		Unmatched      []struct {
			Customer string `json:"customer"`
		} `json:"unmatched"`
	}
	s.expect("GET", "/api/stock", nil, fiber.StatusOK, &report)
	if len(report.Entries) != 1 || report.Entries[0].Remaining != 30 || report.Entries[0].AreaRemaining != 90 {
		t.Fatalf("stok hatalı: %+v", report)
	}
	if len(report.Unmatched) != 1 || report.Unmatched[0].Customer != "XYZ" {
		t.Fatalf("eşleşmeyen sevkiyat raporlanmalı: %+v", report.Unmatched)
	}

	path := fmt.Sprintf("/api/production/%d", p.ID)
	s.expect("PUT", path, fiber.Map{
		"date": "2025-12-09", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 40,
	}, fiber.StatusConflict, nil)
	s.expect("DELETE", path, nil, fiber.StatusConflict, nil)

	var stats struct {
		NormalStock     int `json:"normal_stock"`
		ProductionCount int `json:"production_count"`
		UnmatchedCount  int `json:"unmatched_count"`
	}
	s.expect("GET", "/api/stock/stats", nil, fiber.StatusOK, &stats)
	if stats.NormalStock != 30 || stats.ProductionCount != 1 || stats.UnmatchedCount != 1 {
		t.Fatalf("istatistik hatalı: %+v", stats)
	}
}

func TestProductionUpdateRecomputesArea(t *testing.T) {
	s := loggedInAdmin(t)

	var p productionResp
	s.expect("POST", "/api/production", fiber.Map{
		"date": "2025-12-09", "machine": "M2", "thickness": "3",
		"width_cm": 120, "length_m": 250, "quantity": 2, "color": "Mavi",
	}, fiber.StatusCreated, &p)
	if p.M2 != 6 || p.ColorCategory != "Renkli" {
		t.Fatalf("üretim kaydı hatalı: %+v", p)
	}

	var updated productionResp
	s.expect("PUT", fmt.Sprintf("/api/production/%d", p.ID), fiber.Map{
		"date": "2025-12-09", "machine": "M2", "thickness": "3",
		"width_cm": 120, "length_m": 250, "quantity": 4, "color": "Mavi",
	}, fiber.StatusOK, &updated)
	if updated.M2 != 12 || updated.BatchCode != p.BatchCode {
		t.Fatalf("güncelleme hatalı: %+v", updated)
	}

	var estimate []struct {
		Machine string  `json:"machine"`
		TotalM2 float64 `json:"total_m2"`
		Petkim  float64 `json:"petkim"`
	}
	s.expect("GET", "/api/daily-consumption/estimate", nil, fiber.StatusOK, &estimate)
	if len(estimate) != 1 || estimate[0].TotalM2 != 12 || estimate[0].Petkim != 2.22 {
		t.Fatalf("tüketim tahmini hatalı: %+v", estimate)
	}
}

func TestMaterialsAndCalculator(t *testing.T) {
	s := loggedInAdmin(t)

	var rates struct {
		USD float64 `json:"usd"`
		EUR float64 `json:"eur"`
	}
	s.expect("GET", "/api/exchange-rates", nil, fiber.StatusOK, &rates)
	if rates.USD != 42 || rates.EUR != 48 {
		t.Fatalf("varsayılan kurlar beklenir: %+v", rates)
	}
	s.expect("PUT", "/api/exchange-rates", fiber.Map{"usd": 40, "eur": 50}, fiber.StatusOK, nil)

	var purchase struct {
		ExchangeRate float64 `json:"exchange_rate"`
		TotalPrice   float64 `json:"total_price"`
		Unit         string  `json:"unit"`
	}
	s.expect("POST", "/api/materials", fiber.Map{
		"date": "2025-12-01", "material": "PETKIM", "quantity": 1000,
		"unit_price": 1, "currency": "USD", "total_price": 1,
	}, fiber.StatusCreated, &purchase)
	if purchase.ExchangeRate != 40 || purchase.TotalPrice != 40000 || purchase.Unit != "kg" {
		t.Fatalf("hammadde girişi hatalı: %+v", purchase)
	}

	s.expect("POST", "/api/materials", fiber.Map{
		"date": "2025-12-01", "material": "MASURA 100", "quantity": 100,
		"unit_price": 12.5, "currency": "TL", "exchange_rate": 35,
	}, fiber.StatusCreated, &purchase)
	if purchase.ExchangeRate != 1 || purchase.TotalPrice != 1250 || purchase.Unit != "adet" {
		t.Fatalf("TL girişinde kur 1 olmalı: %+v", purchase)
	}

	s.expect("POST", "/api/materials", fiber.Map{
		"date": "2025-12-01", "material": "KUM", "quantity": 1, "unit_price": 1,
	}, fiber.StatusBadRequest, nil)

	var breakdown struct {
		TotalAreaM2 float64 `json:"total_area_m2"`
		PrimaryKg   float64 `json:"primary_kg"`
		SpoolCost   float64 `json:"spool_cost"`
		BaseCost    float64 `json:"base_cost"`
		FinalCost   float64 `json:"final_cost"`
		UnitCost    float64 `json:"unit_cost"`
	}
	s.expect("POST", "/api/cost-calculator", fiber.Map{
		"width_cm": 100, "length_m": 3000, "quantity": 10,
		"grams_per_m2": 850, "spool_type": "masura 100",
	}, fiber.StatusOK, &breakdown)
	// 255 kg × 40 TL + 10 × 12,5 TL masura
	if breakdown.TotalAreaM2 != 300 || breakdown.PrimaryKg != 255 || breakdown.SpoolCost != 125 {
		t.Fatalf("hesap hatalı: %+v", breakdown)
	}
	if !near(breakdown.BaseCost, 10325) || !near(breakdown.FinalCost, 10325*1.15*1.3) {
		t.Fatalf("maliyet hatalı: %+v", breakdown)
	}

	var recut struct {
		Pieces       int     `json:"pieces"`
		CostPerPiece float64 `json:"cost_per_piece"`
	}
	s.expect("POST", "/api/cost-calculator/recut", fiber.Map{
		"parent_base_cost": 1308, "parent_total_area_m2": 300, "piece_area_m2": 0.6875,
		"overhead_pct": 0, "profit_pct": 0,
	}, fiber.StatusOK, &recut)
	if recut.Pieces != 436 || recut.CostPerPiece != 3 {
		t.Fatalf("kesim hesabı hatalı: %+v", recut)
	}

	var saved struct {
		ID        uint    `json:"id"`
		FinalCost float64 `json:"final_cost"`
		Product   string  `json:"product"`
	}
	s.expect("POST", "/api/cost-analysis", fiber.Map{
		"width_cm": 100, "length_m": 3000, "quantity": 10, "grams_per_m2": 850,
		"spool_type": "MASURA 100", "product": "2mm x 100cm x 3000m",
		"overhead_pct": 0, "profit_pct": 0, "date": "2025-12-02",
	}, fiber.StatusCreated, &saved)
	if saved.FinalCost != 10325 || saved.Product != "2mm x 100cm x 3000m" {
		t.Fatalf("kayıtlı analiz hatalı: %+v", saved)
	}

	var list []struct {
		ID uint `json:"id"`
	}
	s.expect("GET", "/api/cost-analysis", nil, fiber.StatusOK, &list)
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("analiz listesi hatalı: %+v", list)
	}
	s.expect("DELETE", fmt.Sprintf("/api/cost-analysis/%d", saved.ID), nil, fiber.StatusNoContent, nil)
}

func TestAuditUndoDelete(t *testing.T) {
	s := loggedInAdmin(t)

	var cut struct {
		ID      uint    `json:"id"`
		PieceM2 float64 `json:"piece_m2"`
		TotalM2 float64 `json:"total_m2"`
		CutSpec string  `json:"cut_spec"`
	}
	s.expect("POST", "/api/cut-products", fiber.Map{
		"date": "2025-12-09", "cut_width_cm": 50, "cut_length_cm": 100,
		"quantity": 10, "color": "Doğal",
	}, fiber.StatusCreated, &cut)
	if cut.PieceM2 != 0.5 || cut.TotalM2 != 5 || cut.CutSpec != "50x100" {
		t.Fatalf("ebat kaydı hatalı: %+v", cut)
	}

	s.expect("DELETE", fmt.Sprintf("/api/cut-products/%d", cut.ID), nil, fiber.StatusNoContent, nil)

	var logs []struct {
		ID       uint   `json:"id"`
		Action   string `json:"action"`
		Undoable bool   `json:"undoable"`
	}
	s.expect("GET", "/api/audit-logs?entity_type=cut_product", nil, fiber.StatusOK, &logs)
	if len(logs) != 2 || logs[0].Action != "delete" || !logs[0].Undoable {
		t.Fatalf("audit log hatalı: %+v", logs)
	}

	undoPath := fmt.Sprintf("/api/audit-logs/%d/undo", logs[0].ID)
	s.expect("POST", undoPath, nil, fiber.StatusOK, nil)
	s.expect("POST", undoPath, nil, fiber.StatusConflict, nil)

	var cuts []struct {
		ID uint `json:"id"`
	}
	s.expect("GET", "/api/cut-products", nil, fiber.StatusOK, &cuts)
	if len(cuts) != 1 || cuts[0].ID != cut.ID {
		t.Fatalf("silinen kayıt aynı ID ile geri gelmeli: %+v", cuts)
	}

	var cutStock struct {
		TotalRemaining int `json:"total_remaining"`
	}
	s.expect("GET", "/api/stock/cut", nil, fiber.StatusOK, &cutStock)
	if cutStock.TotalRemaining != 10 {
		t.Fatalf("ebat stoğu hatalı: %+v", cutStock)
	}
}

func TestAuditUndoUpdate(t *testing.T) {
	s := loggedInAdmin(t)

	var dc struct {
		ID     uint    `json:"id"`
		Petkim float64 `json:"petkim"`
	}
	body := fiber.Map{"date": "2025-12-09", "machine": "M1", "petkim": 120, "estol": 3}
	s.expect("POST", "/api/daily-consumption", body, fiber.StatusCreated, &dc)

	body["petkim"] = 200
	s.expect("PUT", fmt.Sprintf("/api/daily-consumption/%d", dc.ID), body, fiber.StatusOK, &dc)
	if dc.Petkim != 200 {
		t.Fatalf("güncelleme hatalı: %+v", dc)
	}

	var logs []struct {
		ID     uint   `json:"id"`
		Action string `json:"action"`
	}
	s.expect("GET", fmt.Sprintf("/api/audit-logs?entity_type=daily_consumption&entity_id=%d", dc.ID), nil, fiber.StatusOK, &logs)
	if len(logs) != 2 || logs[0].Action != "update" {
		t.Fatalf("audit log hatalı: %+v", logs)
	}
	s.expect("POST", fmt.Sprintf("/api/audit-logs/%d/undo", logs[0].ID), nil, fiber.StatusOK, nil)

	var rows []struct {
		Petkim float64 `json:"petkim"`
	}
	s.expect("GET", "/api/daily-consumption", nil, fiber.StatusOK, &rows)
	if len(rows) != 1 || rows[0].Petkim != 120 {
		t.Fatalf("önceki değer geri gelmeli: %+v", rows)
	}
}

func TestUserManagement(t *testing.T) {
	s := loggedInAdmin(t)

	var op struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	s.expect("POST", "/api/users", fiber.Map{
		"username": "operator1", "name": "Vardiya Operatörü", "password": "123456", "role": "operator",
	}, fiber.StatusCreated, &op)
	s.expect("POST", "/api/users", fiber.Map{
		"username": "OPERATOR1", "name": "Tekrar", "password": "123456", "role": "operator",
	}, fiber.StatusConflict, nil)

	var users []map[string]any
	s.expect("GET", "/api/users", nil, fiber.StatusOK, &users)
	if len(users) != 2 {
		t.Fatalf("2 kullanıcı beklenir, got %d", len(users))
	}
	for _, u := range users {
		if _, ok := u["password_hash"]; ok {
			t.Fatalf("şifre hash'i dönmemeli: %+v", u)
		}
	}

	var logs []struct {
		ID uint `json:"id"`
	}
	s.expect("GET", "/api/audit-logs?entity_type=user", nil, fiber.StatusOK, &logs)
	if len(logs) != 1 {
		t.Fatalf("kullanıcı logu beklenir: %+v", logs)
	}
	s.expect("POST", fmt.Sprintf("/api/audit-logs/%d/undo", logs[0].ID), nil, fiber.StatusConflict, nil)

	s.login("operator1", "123456")
	s.expect("GET", "/api/users", nil, fiber.StatusForbidden, nil)
	s.expect("PUT", "/api/exchange-rates", fiber.Map{"usd": 1, "eur": 1}, fiber.StatusForbidden, nil)
	s.expect("GET", "/api/stock", nil, fiber.StatusOK, nil)

	s.login("admin", "gizli-sifre")
	s.expect("DELETE", fmt.Sprintf("/api/users/%d", op.ID), nil, fiber.StatusNoContent, nil)
	s.expect("PUT", "/api/users/1", fiber.Map{"role": "operator"}, fiber.StatusConflict, nil)
}

type auditLogResp struct {
	ID     uint   `json:"id"`
	Action string `json:"action"`
}

func TestAuditUndoKeepsShippedBatch(t *testing.T) {
	s := loggedInAdmin(t)

	var p productionResp
	s.expect("POST", "/api/production", fiber.Map{
		"date": "2025-12-09", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 50,
	}, fiber.StatusCreated, &p)

	path := fmt.Sprintf("/api/production/%d", p.ID)
	s.expect("PUT", path, fiber.Map{
		"date": "2025-12-09", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 60,
	}, fiber.StatusOK, nil)

	s.expect("POST", "/api/shipments", fiber.Map{
		"date": "2025-12-10", "customer": "ABC Ambalaj", "type": "Normal",
		"size_spec": "2mm 100cm", "quantity": 20, "color": "Doğal",
		"production_batch_code": p.BatchCode,
	}, fiber.StatusCreated, nil)
	s.expect("DELETE", path, nil, fiber.StatusConflict, nil)

	var logs []auditLogResp
	s.expect("GET", fmt.Sprintf("/api/audit-logs?entity_type=production&entity_id=%d", p.ID), nil, fiber.StatusOK, &logs)
	if len(logs) != 2 {
		t.Fatalf("audit log hatalı: %+v", logs)
	}
	for _, l := range logs {
		s.expect("POST", fmt.Sprintf("/api/audit-logs/%d/undo", l.ID), nil, fiber.StatusConflict, nil)
	}

	var report struct {
		Entries []struct {
			Remaining int `json:"remaining"`
		} `json:"entries"`
		Unmatched []struct {
			Customer string `json:"customer"`
		} `json:"unmatched"`
	}
	s.expect("GET", "/api/stock", nil, fiber.StatusOK, &report)
	if len(report.Entries) != 1 || report.Entries[0].Remaining != 40 || len(report.Unmatched) != 0 {
		t.Fatalf("sevk edilmiş parti geri alma ile değişmemeli: %+v", report)
	}
}

func TestAuditUndoShipmentNeedsBatch(t *testing.T) {
	s := loggedInAdmin(t)

	var p productionResp
	s.expect("POST", "/api/production", fiber.Map{
		"date": "2025-12-09", "machine": "M1", "thickness": "2",
		"width_cm": 100, "length_m": 300, "quantity": 50,
	}, fiber.StatusCreated, &p)

	var sh struct {
		ID uint `json:"id"`
	}
	s.expect("POST", "/api/shipments", fiber.Map{
		"date": "2025-12-10", "customer": "ABC Ambalaj", "type": "Normal",
		"size_spec": "2mm 100cm", "quantity": 20, "color": "Doğal",
		"production_batch_code": p.BatchCode,
	}, fiber.StatusCreated, &sh)

	s.expect("DELETE", fmt.Sprintf("/api/shipments/%d", sh.ID), nil, fiber.StatusNoContent, nil)
	s.expect("DELETE", fmt.Sprintf("/api/production/%d", p.ID), nil, fiber.StatusNoContent, nil)

	var logs []auditLogResp
	s.expect("GET", fmt.Sprintf("/api/audit-logs?entity_type=shipment&entity_id=%d", sh.ID), nil, fiber.StatusOK, &logs)
	if len(logs) != 2 || logs[0].Action != "delete" {
		t.Fatalf("audit log hatalı: %+v", logs)
	}
	undoShipment := fmt.Sprintf("/api/audit-logs/%d/undo", logs[0].ID)
	s.expect("POST", undoShipment, nil, fiber.StatusConflict, nil)

	// Parti geri gelince sevkiyat da geri alınabilir
	s.expect("GET", fmt.Sprintf("/api/audit-logs?entity_type=production&entity_id=%d", p.ID), nil, fiber.StatusOK, &logs)
	if len(logs) != 2 || logs[0].Action != "delete" {
		t.Fatalf("üretim audit log hatalı: %+v", logs)
	}
	s.expect("POST", fmt.Sprintf("/api/audit-logs/%d/undo", logs[0].ID), nil, fiber.StatusOK, nil)
	s.expect("POST", undoShipment, nil, fiber.StatusOK, nil)

	var stats struct {
		NormalStock    int `json:"normal_stock"`
		UnmatchedCount int `json:"unmatched_count"`
	}
	s.expect("GET", "/api/stock/stats", nil, fiber.StatusOK, &stats)
	if stats.NormalStock != 30 || stats.UnmatchedCount != 0 {
		t.Fatalf("istatistik hatalı: %+v", stats)
	}
}

func TestCutProductAreas(t *testing.T) {
	s := loggedInAdmin(t)

	var cut struct {
		ID      uint    `json:"id"`
		PieceM2 float64 `json:"piece_m2"`
		TotalM2 float64 `json:"total_m2"`
	}
	// Toplam, yuvarlanmış parça alanından değil ham ölçülerden hesaplanır
	s.expect("POST", "/api/cut-products", fiber.Map{
		"date": "2025-12-09", "cut_width_cm": 55, "cut_length_cm": 125,
		"quantity": 4, "color": "Doğal",
	}, fiber.StatusCreated, &cut)
	if cut.PieceM2 != 0.69 || cut.TotalM2 != 2.75 {
		t.Fatalf("ebat alanı hatalı: %+v", cut)
	}

	s.expect("PUT", fmt.Sprintf("/api/cut-products/%d", cut.ID), fiber.Map{
		"date": "2025-12-09", "cut_width_cm": 55, "cut_length_cm": 125,
		"quantity": 8, "color": "Doğal",
	}, fiber.StatusOK, &cut)
	if cut.PieceM2 != 0.69 || cut.TotalM2 != 5.5 {
		t.Fatalf("güncellenen ebat alanı hatalı: %+v", cut)
	}
}
