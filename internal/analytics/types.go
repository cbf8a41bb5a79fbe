package analytics

// Report is the composite result of one analysis run. It is a pure function
// of the dataset and the reference date: identical inputs serialize to
// identical bytes. Run timestamps live on the service-layer run record.
// Collections are never nil: an empty dataset produces empty slices and
// zeroed scalars.
type Report struct {
	ReferenceDate string `json:"reference_date"`

	Customers []CustomerStats `json:"customers"`
	Products  []ProductStats  `json:"products"`
	Reps      []RepStats      `json:"sales_reps"`

	Daily   []DayBucket   `json:"daily"`
	Weekly  []WeekBucket  `json:"weekly"`
	Monthly []MonthBucket `json:"monthly"`

	Rankings      Rankings      `json:"rankings"`
	Concentration Concentration `json:"concentration"`

	Pairs []ProductPair `json:"cross_sell_pairs"`
	RFM   RFMSegments   `json:"rfm_segments"`

	CustomerProducts []CustomerProductJoin `json:"customer_products"`
	RepProducts      []RepProductJoin      `json:"rep_products"`
	ProductCustomers []ProductCustomerJoin `json:"product_customers"`

	Summary Summary         `json:"summary"`
	Team    TeamPerformance `json:"team"`
}

// CustomerStats holds the per-customer fold plus derived fields.
type CustomerStats struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TotalSales    float64 `json:"total_sales"`
	OrderCount    int     `json:"order_count"`
	Quantity      float64 `json:"quantity"`
	FirstPurchase string  `json:"first_purchase"`
	LastPurchase  string  `json:"last_purchase"`
	AvgLineValue  float64 `json:"avg_line_value"`

	// Up to three most purchased products by quantity.
	TopProducts []ProductShare `json:"top_products"`

	TicketAverage   float64 `json:"ticket_average"`
	DaysSinceLast   int     `json:"days_since_last"`
	RecencyBucket   string  `json:"recency_bucket"`
	PurchaseInterval float64 `json:"purchase_interval_days"`
}

// ProductShare is a small (product, quantity) entry inside customer stats.
type ProductShare struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// ProductStats holds the per-product fold plus derived fields. Price stats
// are taken from line unit prices, discounting zero and negative prices.
type ProductStats struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	TotalValue    float64 `json:"total_value"`
	OrderCount    int     `json:"order_count"`
	PriceMin      float64 `json:"price_min"`
	PriceAvg      float64 `json:"price_avg"`
	PriceMax      float64 `json:"price_max"`
	CustomerCount int     `json:"customer_count"`
	RepCount      int     `json:"rep_count"`
	FirstSale     string  `json:"first_sale"`
	LastSale      string  `json:"last_sale"`

	// Quantity sold per day between first and last sale (minimum one day).
	Velocity     float64 `json:"velocity"`
	MarginSpread float64 `json:"margin_spread"`
	DaysSinceLastSale int `json:"days_since_last_sale"`
}

// RepStats holds the per-sales-rep fold plus derived fields.
type RepStats struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalSales     float64 `json:"total_sales"`
	OrderCount     int     `json:"order_count"`
	Quantity       float64 `json:"quantity"`
	CustomerCount  int     `json:"customer_count"`
	ProductCount   int     `json:"product_count"`
	ActiveDays     int     `json:"active_days"`
	OrdersPerDay   float64 `json:"orders_per_day"`
	TicketAverage  float64 `json:"ticket_average"`
	LoyalCustomers int     `json:"loyal_customers"`
	LoyalRatio     float64 `json:"loyal_ratio"`
	ProductMix     float64 `json:"product_mix"`
}

// EntityShare is one contributor inside a daily bucket breakdown.
type EntityShare struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
	Quantity float64 `json:"quantity"`
	Average  float64 `json:"average"`
}

// DayBucket aggregates orders of one calendar date.
type DayBucket struct {
	Date          string        `json:"date"`
	Total         float64       `json:"total"`
	Orders        int           `json:"orders"`
	Quantity      float64       `json:"quantity"`
	CustomerCount int           `json:"customer_count"`
	ByCustomer    []EntityShare `json:"by_customer"`
	ByProduct     []EntityShare `json:"by_product"`
	ByRep         []EntityShare `json:"by_rep"`
}

// WeekBucket aggregates orders of one ISO week (key YYYY-Www).
type WeekBucket struct {
	Week          string  `json:"week"`
	Total         float64 `json:"total"`
	Orders        int     `json:"orders"`
	Quantity      float64 `json:"quantity"`
	CustomerCount int     `json:"customer_count"`
	Growth        float64 `json:"growth"`
}

// MonthBucket aggregates orders of one calendar month (key YYYY-MM).
// NewCustomers counts customers first seen in this month relative to all
// earlier months.
type MonthBucket struct {
	Month         string  `json:"month"`
	Total         float64 `json:"total"`
	Orders        int     `json:"orders"`
	Quantity      float64 `json:"quantity"`
	CustomerCount int     `json:"customer_count"`
	NewCustomers  int     `json:"new_customers"`
	Growth        float64 `json:"growth"`
}

// RankEntry is one row of a leaderboard, sorted by Value descending with id
// as tie break so rankings are deterministic.
type RankEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Rankings holds the top-N leaderboards derived from the per-entity folds.
type Rankings struct {
	TopCustomersByValue  []RankEntry `json:"top_customers_by_value"`
	TopCustomersByTicket []RankEntry `json:"top_customers_by_ticket"`
	TopProductsByQuantity []RankEntry `json:"top_products_by_quantity"`
	TopProductsByValue   []RankEntry `json:"top_products_by_value"`
	TopRepsByValue       []RankEntry `json:"top_reps_by_value"`
	TopRepsByEfficiency  []RankEntry `json:"top_reps_by_efficiency"`
}

// Dependency identifies the single highest-value entity and its share of
// total revenue.
type Dependency struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

// Concentration holds the Pareto analysis: revenue share of the top 20% of
// customers and products, plus single-entity dependency metrics.
type Concentration struct {
	CustomerTop20Share float64    `json:"customer_top20_share"`
	ProductTop20Share  float64    `json:"product_top20_share"`
	TopCustomer        Dependency `json:"top_customer"`
	TopProduct         Dependency `json:"top_product"`
}

// ProductPair is one unordered product pair co-occurring inside orders.
// The pair is keyed canonically: ProductA sorts before ProductB.
type ProductPair struct {
	ProductA      string  `json:"product_a"`
	ProductAName  string  `json:"product_a_name"`
	ProductB      string  `json:"product_b"`
	ProductBName  string  `json:"product_b_name"`
	Frequency     int     `json:"frequency"`
	CustomerCount int     `json:"customer_count"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// RFMSegments holds mutually exclusive customer cohort counts. Customers
// matching no rule are intentionally not counted in any bucket.
type RFMSegments struct {
	Champions int `json:"champions"`
	Loyal     int `json:"loyal"`
	Potential int `json:"potential"`
	AtRisk    int `json:"at_risk"`
	Lost      int `json:"lost"`
}

// CustomerProductRow is one product inside a customer's purchase breakdown.
type CustomerProductRow struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Value        float64 `json:"value"`
	Purchases    int     `json:"purchases"`
	LastPurchase string  `json:"last_purchase"`
}

// CustomerProductJoin lists the products a customer purchased, sorted by
// value descending.
type CustomerProductJoin struct {
	CustomerID   string               `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	Products     []CustomerProductRow `json:"products"`
}

// RepProductRow is one product inside a rep's sales breakdown.
type RepProductRow struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Value     float64 `json:"value"`
	Buyers    int     `json:"buyers"`
	LastSale  string  `json:"last_sale"`
}

// RepProductJoin lists the products a sales rep sold, sorted by value
// descending.
type RepProductJoin struct {
	RepID    string          `json:"rep_id"`
	RepName  string          `json:"rep_name"`
	Products []RepProductRow `json:"products"`
}

// ProductCustomerRow is one customer inside a product's buyer breakdown.
type ProductCustomerRow struct {
	CustomerID    string  `json:"customer_id"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	Value         float64 `json:"value"`
	Purchases     int     `json:"purchases"`
	LastPurchase  string  `json:"last_purchase"`
	TicketAverage float64 `json:"ticket_average"`
}

// ProductCustomerJoin lists the customers who bought a product, sorted by
// value descending.
type ProductCustomerJoin struct {
	ProductID   string               `json:"product_id"`
	ProductName string               `json:"product_name"`
	Customers   []ProductCustomerRow `json:"customers"`
}

// Summary holds the global KPIs of the run.
type Summary struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalOrders        int     `json:"total_orders"`
	TotalQuantity      float64 `json:"total_quantity"`
	GlobalTicketAverage float64 `json:"global_ticket_average"`
	ProductCount       int     `json:"product_count"`
	CustomerCount      int     `json:"customer_count"`
	RepCount           int     `json:"rep_count"`
	ItemsPerOrder      float64 `json:"items_per_order"`
	ValuePerItem       float64 `json:"value_per_item"`
	GrowthRate         float64 `json:"growth_rate"`
	ChurnRate          float64 `json:"churn_rate"`
	LifetimeValue      float64 `json:"lifetime_value"`
}

// TeamPerformance holds cross-entity averages and the single most efficient
// rep by ticket average.
type TeamPerformance struct {
	OrdersPerRep     float64    `json:"orders_per_rep"`
	SalesPerCustomer float64    `json:"sales_per_customer"`
	TopRep           Dependency `json:"top_rep"`
}
