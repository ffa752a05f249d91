package services

import "testing"

func TestLeadFunnelStats(t *testing.T) {
	stats := leadFunnelStats(10, 4, 1)
	if stats.ResponseRate != 40.0 {
		t.Fatalf("expected response rate 40, got %v", stats.ResponseRate)
	}
	if stats.ConversionRate != 25.0 {
		t.Fatalf("expected conversion rate 25, got %v", stats.ConversionRate)
	}
}

func TestLeadFunnelStatsZeroLeads(t *testing.T) {
	stats := leadFunnelStats(0, 0, 0)
	if stats.ResponseRate != 0 || stats.ConversionRate != 0 {
		t.Fatalf("rates must stay zero without leads: %+v", stats)
	}
}

func TestLeadFunnelStatsNoResponses(t *testing.T) {
	stats := leadFunnelStats(5, 0, 0)
	if stats.ResponseRate != 0 {
		t.Fatalf("expected response rate 0, got %v", stats.ResponseRate)
	}
	if stats.ConversionRate != 0 {
		t.Fatalf("conversion rate undefined without responses, got %v", stats.ConversionRate)
	}
}
