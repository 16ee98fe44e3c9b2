package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersCreatedTotal  prometheus.Counter
	LoanOffersCreatedTotal prometheus.Counter
	CalculationsTotal      *prometheus.CounterVec
	ValidationFailures     *prometheus.CounterVec
	EventsPublishedTotal   *prometheus.CounterVec
}

type PortfolioMetrics struct {
	Customers           prometheus.Gauge
	LoanOffers          prometheus.Gauge
	OfferedAmount       prometheus.Gauge
	AverageInterestRate prometheus.Gauge
	LastSnapshot        prometheus.Gauge
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_offers_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_offers_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_offers_customers_created_total",
				Help: "Total number of customers successfully created.",
			},
		),
		LoanOffersCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_offers_offers_created_total",
				Help: "Total number of loan offers successfully created.",
			},
		),
		CalculationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_calculations_total",
				Help: "Total number of monthly payment calculations by outcome.",
			},
			[]string{"status"},
		),
		ValidationFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_validation_failures_total",
				Help: "Total number of rejected requests by resource.",
			},
			[]string{"resource"},
		),
		EventsPublishedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_offers_events_published_total",
				Help: "Total number of domain events handed to the broker by type and outcome.",
			},
			[]string{"event", "status"},
		),
	}

	Portfolio = PortfolioMetrics{
		Customers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_offers_portfolio_customers",
			Help: "Number of stored customers at the last portfolio snapshot.",
		}),
		LoanOffers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_offers_portfolio_offers",
			Help: "Number of stored loan offers at the last portfolio snapshot.",
		}),
		OfferedAmount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_offers_portfolio_offered_amount",
			Help: "Sum of all offered loan amounts at the last portfolio snapshot.",
		}),
		AverageInterestRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_offers_portfolio_average_interest_rate",
			Help: "Mean annual interest rate of stored loan offers at the last portfolio snapshot.",
		}),
		LastSnapshot: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "loan_offers_portfolio_last_snapshot_timestamp_seconds",
			Help: "Unix time of the last successful portfolio snapshot.",
		}),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerCreated() {
	Business.CustomersCreatedTotal.Inc()
}

func RecordLoanOfferCreated() {
	Business.LoanOffersCreatedTotal.Inc()
}

func RecordCalculation(status string) {
	Business.CalculationsTotal.WithLabelValues(status).Inc()
}

func RecordValidationFailure(resource string) {
	Business.ValidationFailures.WithLabelValues(resource).Inc()
}

func RecordEventPublished(event, status string) {
	Business.EventsPublishedTotal.WithLabelValues(event, status).Inc()
}

func RecordPortfolioSnapshot(customers, offers int64, offeredAmount, avgRate float64, at time.Time) {
	Portfolio.Customers.Set(float64(customers))
	Portfolio.LoanOffers.Set(float64(offers))
	Portfolio.OfferedAmount.Set(offeredAmount)
	Portfolio.AverageInterestRate.Set(avgRate)
	Portfolio.LastSnapshot.Set(float64(at.Unix()))
}
