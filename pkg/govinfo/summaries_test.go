package govinfo

import (
	"context"
	"errors"
	"testing"

	"github.com/openfederal/govinfo-client/internal/testutil"
)

func TestPackageSummaryByID(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/packages/BILLS-116hr1-ih/summary", testutil.NewHealthyResponse(`{
		"packageId": "BILLS-116hr1-ih",
		"title": "For the People Act of 2019",
		"docClass": "hr",
		"congress": "116",
		"dateIssued": "2019-01-03",
		"lastModified": "2019-01-10T15:00:00Z",
		"download": {
			"txtLink": "https://api.govinfo.gov/packages/BILLS-116hr1-ih/htm",
			"pdfLink": "https://api.govinfo.gov/packages/BILLS-116hr1-ih/pdf"
		}
	}`))

	summary, err := svc.PackageSummaryByID(context.Background(), "BILLS-116hr1-ih")
	if err != nil {
		t.Fatalf("PackageSummaryByID: %v", err)
	}

	if summary.PackageID != "BILLS-116hr1-ih" {
		t.Errorf("PackageID = %q", summary.PackageID)
	}
	if summary.Title != "For the People Act of 2019" {
		t.Errorf("Title = %q", summary.Title)
	}
	if summary.Download["txtLink"] == "" {
		t.Error("Expected txtLink in download map")
	}
}

func TestPackageSummaryByID_Validation(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	_, err := svc.PackageSummaryByID(context.Background(), "")
	if !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Expected ErrMissingParameter, got %v", err)
	}
	if n := mock.GetRequestCount(); n != 0 {
		t.Errorf("Expected 0 requests, got %d", n)
	}
}

func TestPackageSummaryByID_MissingPackageID(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/packages/BILLS-116hr1-ih/summary",
		testutil.NewHealthyResponse(`{"title": "no id here"}`))

	_, err := svc.PackageSummaryByID(context.Background(), "BILLS-116hr1-ih")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Errorf("Expected MalformedResponseError, got %v", err)
	}
}

func TestAllGranules_FollowsNextPage(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/packages/CREC-2020-01-01/granules", testutil.NewHealthyResponse(`{
		"count": 3,
		"granules": [
			{"granuleId": "g1", "title": "Senate section"},
			{"granuleId": "g2", "title": "House section"}
		],
		"nextPage": "`+mock.URL()+`/packages/CREC-2020-01-01/granules/page2"
	}`))
	mock.SetResponse("/packages/CREC-2020-01-01/granules/page2", testutil.NewHealthyResponse(`{
		"count": 3,
		"granules": [
			{"granuleId": "g3", "title": "Extensions of remarks"}
		]
	}`))

	granules, err := svc.AllGranules(context.Background(), "CREC-2020-01-01", 0)
	if err != nil {
		t.Fatalf("AllGranules: %v", err)
	}

	want := []string{"g1", "g2", "g3"}
	if len(granules) != len(want) {
		t.Fatalf("granules = %d, want %d", len(granules), len(want))
	}
	for i, id := range want {
		if granules[i].GranuleID != id {
			t.Errorf("granules[%d].GranuleID = %q, want %q", i, granules[i].GranuleID, id)
		}
	}
}

func TestGranules_MissingField(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/packages/CREC-2020-01-01/granules",
		testutil.NewHealthyResponse(`{"count": 0}`))

	_, err := svc.Granules(context.Background(), "CREC-2020-01-01", 0)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Errorf("Expected MalformedResponseError, got %v", err)
	}
}

func TestGranuleSummaryByID(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/packages/CREC-2020-01-01/granules/g1/summary",
		testutil.NewHealthyResponse(`{
			"granuleId": "g1",
			"title": "Senate section",
			"granuleClass": "SENATE",
			"download": {"txtLink": "https://api.govinfo.gov/packages/CREC-2020-01-01/granules/g1/htm"}
		}`))

	summary, err := svc.GranuleSummaryByID(context.Background(), "CREC-2020-01-01", "g1")
	if err != nil {
		t.Fatalf("GranuleSummaryByID: %v", err)
	}
	if summary.GranuleID != "g1" {
		t.Errorf("GranuleID = %q, want g1", summary.GranuleID)
	}

	_, err = svc.GranuleSummaryByID(context.Background(), "CREC-2020-01-01", "")
	if !errors.Is(err, ErrMissingParameter) {
		t.Errorf("Expected ErrMissingParameter for empty granule id, got %v", err)
	}
}

func TestRelatedEdges(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/related/BILLS-116hr1", testutil.NewHealthyResponse(`{
		"relationships": [
			{"relationship": "BILLS same bill", "collection": "BILLS", "link": "https://api.govinfo.gov/related/BILLS-116hr1/BILLS"},
			{"relationship": "Committee prints", "collection": "CPRT", "link": "https://api.govinfo.gov/related/BILLS-116hr1/CPRT"}
		]
	}`))

	edges, err := svc.RelatedEdges(context.Background(), "BILLS-116hr1")
	if err != nil {
		t.Fatalf("RelatedEdges: %v", err)
	}

	if len(edges) != 2 {
		t.Fatalf("edges = %d, want 2", len(edges))
	}
	if edges[0].AccessID != "BILLS-116hr1" {
		t.Errorf("AccessID = %q, want BILLS-116hr1", edges[0].AccessID)
	}
	if edges[1].Collection != "CPRT" {
		t.Errorf("Collection = %q, want CPRT", edges[1].Collection)
	}
}

func TestRelated_MissingField(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/related/BILLS-116hr1", testutil.NewHealthyResponse(`{"other": true}`))

	_, err := svc.Related(context.Background(), "BILLS-116hr1")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Errorf("Expected MalformedResponseError, got %v", err)
	}
}

func TestCollections(t *testing.T) {
	mock := testutil.NewMockGovInfo()
	defer mock.Close()
	svc := newTestService(t, mock)

	mock.SetResponse("/collections", testutil.NewHealthyResponse(`{
		"collections": [
			{"collectionCode": "BILLS", "collectionName": "Congressional Bills", "packageCount": 250000},
			{"collectionCode": "CREC", "collectionName": "Congressional Record", "packageCount": 12000}
		]
	}`))

	collections, err := svc.Collections(context.Background())
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}

	if len(collections) != 2 {
		t.Fatalf("collections = %d, want 2", len(collections))
	}
	if collections[0].CollectionCode != "BILLS" {
		t.Errorf("CollectionCode = %q, want BILLS", collections[0].CollectionCode)
	}
}
