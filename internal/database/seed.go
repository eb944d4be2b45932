package database

import (
	"context"
	"database/sql"
	"time"

	"pipedeck/internal/crm"
	"pipedeck/internal/database/repository"
)

// SeedDemoData populates empty tables with the demo dataset. It is
// idempotent and safe to run on every startup; a database that already
// holds rows is left alone so user edits survive restarts.
func SeedDemoData(ctx context.Context, db *sql.DB) error {
	leadRepo := repository.NewLeadRepo(db)
	oppRepo := repository.NewOpportunityRepo(db)

	if n, err := leadRepo.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, l := range demoLeads() {
			if err := leadRepo.Insert(ctx, l); err != nil {
				return err
			}
		}
	}

	if n, err := oppRepo.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, o := range demoOpportunities() {
			if err := oppRepo.Insert(ctx, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func demoLeads() []crm.Lead {
	return []crm.Lead{
		{ID: "LD001", Name: "Sarah Johnson", Company: "TechCorp Solutions", Email: "sarah.johnson@techcorp.com", Source: "website", Score: 92, Status: crm.StatusNew},
		{ID: "LD002", Name: "Michael Chen", Company: "Digital Innovations Inc", Email: "michael.chen@digitalinnovations.com", Source: "referral", Score: 87, Status: crm.StatusContacted},
		{ID: "LD003", Name: "Emily Rodriguez", Company: "StartupHub", Email: "emily.rodriguez@startuphub.com", Source: "email", Score: 78, Status: crm.StatusQualified},
		{ID: "LD004", Name: "David Thompson", Company: "Enterprise Systems", Email: "david.thompson@enterprisesys.com", Source: "phone", Score: 85, Status: crm.StatusNew},
		{ID: "LD005", Name: "Lisa Wang", Company: "CloudTech Partners", Email: "lisa.wang@cloudtech.com", Source: "social", Score: 73, Status: crm.StatusContacted},
		{ID: "LD006", Name: "Robert Martinez", Company: "Global Dynamics", Email: "robert.martinez@globaldynamics.com", Source: "event", Score: 91, Status: crm.StatusQualified},
		{ID: "LD007", Name: "Jennifer Kim", Company: "Innovation Labs", Email: "jennifer.kim@innovationlabs.com", Source: "website", Score: 45, Status: crm.StatusUnqualified},
		{ID: "LD008", Name: "Alex Brown", Company: "Future Systems", Email: "alex.brown@futuresystems.com", Source: "referral", Score: 82, Status: crm.StatusNew},
		{ID: "LD009", Name: "Maria Garcia", Company: "Tech Ventures", Email: "maria.garcia@techventures.com", Source: "email", Score: 67, Status: crm.StatusContacted},
		{ID: "LD010", Name: "James Wilson", Company: "Digital Solutions", Email: "james.wilson@digitalsolutions.com", Source: "phone", Score: 89, Status: crm.StatusQualified},
	}
}

func demoOpportunities() []crm.Opportunity {
	amt := func(v float64) *float64 { return &v }
	day := func(d int) time.Time { return time.Date(2024, time.September, d, 0, 0, 0, 0, time.UTC) }
	return []crm.Opportunity{
		{ID: "opp-001", Name: "Enterprise Software License - TechCorp", Stage: crm.StageProposal, Amount: amt(75000), AccountName: "TechCorp Solutions", CreatedAt: day(15)},
		{ID: "opp-002", Name: "Cloud Migration Services - DataFlow Inc", Stage: crm.StageNegotiation, Amount: amt(120000), AccountName: "DataFlow Inc", CreatedAt: day(12)},
		{ID: "opp-003", Name: "Marketing Automation Platform - GrowthCo", Stage: crm.StageQualification, Amount: amt(45000), AccountName: "GrowthCo Marketing", CreatedAt: day(10)},
		{ID: "opp-004", Name: "Security Audit Services - SecureBank", Stage: crm.StageClosedWon, Amount: amt(85000), AccountName: "SecureBank Financial", CreatedAt: day(8)},
		{ID: "opp-005", Name: "Custom Development Project - InnovateLab", Stage: crm.StageProposal, Amount: amt(95000), AccountName: "InnovateLab Technologies", CreatedAt: day(5)},
		{ID: "opp-006", Name: "Training & Consulting - EduTech Solutions", Stage: crm.StageClosedLost, Amount: amt(25000), AccountName: "EduTech Solutions", CreatedAt: day(3)},
		{ID: "opp-007", Name: "Infrastructure Upgrade - MegaCorp", Stage: crm.StageNegotiation, Amount: amt(180000), AccountName: "MegaCorp Industries", CreatedAt: day(1)},
	}
}
