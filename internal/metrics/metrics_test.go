package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherNames は登録済みメトリクス名の集合を返すヘルパー。
func gatherNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

// 全メトリクスがレジストリに登録されることを検証する。
func TestNewCollector_RegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	// カウンターは初回インクリメントまでGatherに現れないベクター型があるため、
	// 一通り記録してから収集する。
	c.RecordRegistration()
	c.RecordLogin("success")
	c.RecordTradeCreated()
	c.RecordTradeDeleted()
	c.RecordHTTPStatus(200)
	c.RecordHTTPDuration(25 * time.Millisecond)

	names := gatherNames(t, reg)
	want := []string{
		"tradelog_registrations_total",
		"tradelog_logins_total",
		"tradelog_trades_created_total",
		"tradelog_trades_deleted_total",
		"tradelog_http_status_total",
		"tradelog_http_request_duration_seconds",
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

// ログイン結果ラベルごとに独立して集計されることを検証する。
func TestCollector_RecordLogin_ByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("success")
	c.RecordLogin("failure")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	counts := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "tradelog_logins_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "result" {
					counts[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	if counts["success"] != 2 {
		t.Errorf("success count = %v, want 2", counts["success"])
	}
	if counts["failure"] != 1 {
		t.Errorf("failure count = %v, want 1", counts["failure"])
	}
}

// スクレイプエンドポイントがテキスト形式でメトリクスを返すことを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRegistration()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "tradelog_registrations_total 1") {
		t.Errorf("body should contain registration counter, got:\n%s", body)
	}
}
