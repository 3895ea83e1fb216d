package catalog

import "galcon/internal/model"

// Builtin returns the catalog of EnformionGO wrapper operations. Paths and
// default search types follow the wrapper service; field keys use the same
// snake_case document paths its request models expect.
func Builtin() *Registry {
	r, err := New(builtinEndpoints()...)
	if err != nil {
		// the built-in catalog is static data; a bad entry is a programming error
		panic(err)
	}
	return r
}

func builtinEndpoints() []model.EndpointDescriptor {
	text := func(key, label, placeholder string) model.FieldSpec {
		return model.FieldSpec{Key: key, Label: label, Type: model.TypeText, Placeholder: placeholder}
	}
	number := func(key, label, placeholder string) model.FieldSpec {
		return model.FieldSpec{Key: key, Label: label, Type: model.TypeNumber, Placeholder: placeholder}
	}

	return []model.EndpointDescriptor{
		{
			ID:         "person-search",
			Label:      "Person Search",
			Method:     "POST",
			Path:       "/person-search",
			Category:   "People Data",
			SearchType: "Person",
			Help:       "Search for people by name, age, and address. Use search type Teaser for preview results.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", "John"),
				text("middle_name", "Middle name", ""),
				text("last_name", "Last name", "Smith"),
				text("dob", "Date of birth", "MM/DD/YYYY"),
				number("age", "Age", "42"),
				text("addresses.0.address_line_1", "Address line 1", "100 Main St"),
				text("addresses.0.address_line_2", "City, state, zip", "Denver, CO 80203"),
				text("phone", "Phone", "(555) 555-5555"),
				text("email", "Email", "john@example.com"),
			},
			Sample: map[string]any{
				"first_name": "John",
				"last_name":  "Smith",
				"addresses": []any{
					map[string]any{"address_line_2": "Denver, CO"},
				},
			},
		},
		{
			ID:         "contact-enrichment",
			Label:      "Contact Enrichment",
			Method:     "POST",
			Path:       "/contact-enrichment",
			Category:   "Dev APIs",
			SearchType: "DevAPIContactEnrich",
			Help:       "Enrich a contact. Provide at least two of: name, phone, address, email.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", "John"),
				text("middle_name", "Middle name", ""),
				text("last_name", "Last name", "Smith"),
				text("phone", "Phone", "(555) 555-5555"),
				text("email", "Email", "john@example.com"),
				text("address.address_line_1", "Address line 1", "100 Main St"),
				text("address.address_line_2", "City, state, zip", "Denver, CO 80203"),
			},
			Sample: map[string]any{
				"first_name": "John",
				"last_name":  "Smith",
				"phone":      "(555) 555-5555",
			},
		},
		{
			ID:         "reverse-phone-search",
			Label:      "Reverse Phone Search",
			Method:     "POST",
			Path:       "/reverse-phone-search",
			Category:   "People Data",
			SearchType: "ReversePhoneSearch",
			Help:       "Find people associated with a phone number.",
			Fields: []model.FieldSpec{
				text("phone", "Phone", "(555) 555-5555"),
			},
			Sample: map[string]any{"phone": "(555) 555-5555"},
		},
		{
			ID:         "caller-id",
			Label:      "Caller ID",
			Method:     "POST",
			Path:       "/caller-id",
			Category:   "Dev APIs",
			SearchType: "DevAPICallerID",
			Help:       "Identify the owner of a phone number.",
			Fields: []model.FieldSpec{
				text("phone", "Phone", "(555) 555-5555"),
			},
			Sample: map[string]any{"phone": "(555) 555-5555"},
		},
		{
			ID:         "email-id",
			Label:      "Email ID",
			Method:     "POST",
			Path:       "/email-id",
			Category:   "Dev APIs",
			SearchType: "DevAPIEmailID",
			Help:       "Identify the owner of an email address.",
			Fields: []model.FieldSpec{
				text("email", "Email", "john@example.com"),
			},
			Sample: map[string]any{"email": "john@example.com"},
		},
		{
			ID:         "contact-id",
			Label:      "Contact ID",
			Method:     "POST",
			Path:       "/contact-id",
			Category:   "Dev APIs",
			SearchType: "DevAPIContactID",
			Help:       "Look up contact information by unique person id.",
			Fields: []model.FieldSpec{
				text("person_id", "Person id", ""),
			},
			Sample: map[string]any{"person_id": ""},
		},
		{
			ID:         "address-id",
			Label:      "Address ID",
			Method:     "POST",
			Path:       "/address-id",
			Category:   "Dev APIs",
			SearchType: "DevAPIAddressID",
			Help:       "Find contact info for current owners or residents of a property.",
			Fields: []model.FieldSpec{
				text("address_line_1", "Address line 1", "100 Main St"),
				text("address_line_2", "City, state, zip", "Denver, CO 80203"),
			},
			Sample: map[string]any{
				"address_line_1": "100 Main St",
				"address_line_2": "Denver, CO 80203",
			},
		},
		{
			ID:         "address-autocomplete",
			Label:      "Address AutoComplete",
			Method:     "POST",
			Path:       "/address-autocomplete",
			Category:   "Dev APIs",
			SearchType: "AddressSearch",
			Help:       "Autocomplete a partial address.",
			Fields: []model.FieldSpec{
				text("input", "Partial address", "100 Main"),
			},
			Sample: map[string]any{"input": "100 Main"},
		},
		{
			ID:         "id-verification",
			Label:      "ID Verification",
			Method:     "POST",
			Path:       "/id-verification",
			Category:   "People Data",
			SearchType: "DevAPIIDVerification",
			Help:       "Identity score and verification flag. Provide at least two of: SSN, name, phone, address, email.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", ""),
				text("middle_name", "Middle name", ""),
				text("last_name", "Last name", ""),
				text("ssn", "SSN", ""),
				text("phones[0]", "Phone", "(555) 555-5555"),
				text("emails[0]", "Email", ""),
				text("address_line_1", "Address line 1", ""),
				text("address_line_2", "City, state, zip", ""),
			},
			Sample: map[string]any{
				"first_name": "John",
				"last_name":  "Smith",
				"phones":     []any{"(555) 555-5555"},
			},
		},
		{
			ID:         "census-search",
			Label:      "Census Search",
			Method:     "POST",
			Path:       "/census-search",
			Category:   "People Data",
			SearchType: "Census",
			Help:       "Search historical census population data.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", ""),
				text("last_name", "Last name", ""),
				number("age", "Age", ""),
				text("state", "State", "CO"),
			},
			Sample: map[string]any{"last_name": "Smith", "state": "CO"},
		},
		{
			ID:         "divorce-search",
			Label:      "Divorce Search",
			Method:     "POST",
			Path:       "/divorce-search",
			Category:   "People Data",
			SearchType: "Divorce",
			Help:       "Search divorce records.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", ""),
				text("last_name", "Last name", ""),
				text("state", "State", "CO"),
			},
			Sample: map[string]any{"last_name": "Smith", "state": "CO"},
		},
		{
			ID:         "linkedin-id",
			Label:      "LinkedIn ID",
			Method:     "POST",
			Path:       "/linkedin-id",
			Category:   "People Data",
			SearchType: "LinkedInID",
			Help:       "Search by LinkedIn profile URL.",
			Fields: []model.FieldSpec{
				text("linkedin_url", "LinkedIn URL", "https://www.linkedin.com/in/example"),
			},
			Sample: map[string]any{"linkedin_url": "https://www.linkedin.com/in/example"},
		},
		{
			ID:         "property-search-v2",
			Label:      "Property Search V2",
			Method:     "POST",
			Path:       "/property-search-v2",
			Category:   "Property Data",
			SearchType: "PropertyV2Search",
			Help:       "Search property records.",
			Fields: []model.FieldSpec{
				text("address.address_line_1", "Address line 1", "100 Main St"),
				text("address.address_line_2", "City, state, zip", "Denver, CO 80203"),
				text("county", "County", ""),
				text("state", "State", ""),
			},
			Sample: map[string]any{
				"address": map[string]any{
					"address_line_1": "100 Main St",
					"address_line_2": "Denver, CO 80203",
				},
			},
		},
		{
			ID:         "business-search-v2",
			Label:      "Business Search V2",
			Method:     "POST",
			Path:       "/business-search-v2",
			Category:   "Business Data",
			SearchType: "BusinessV2Search",
			Help:       "Search business records by name or address.",
			Fields: []model.FieldSpec{
				text("business_name", "Business name", "Acme LLC"),
				text("address.address_line_1", "Address line 1", ""),
				text("address.address_line_2", "City, state, zip", ""),
			},
			Sample: map[string]any{"business_name": "Acme LLC"},
		},
		{
			ID:         "domain-search",
			Label:      "Domain Search",
			Method:     "POST",
			Path:       "/domain-search",
			Category:   "Business Data",
			SearchType: "DomainSearch",
			Help:       "Search by internet domain.",
			Fields: []model.FieldSpec{
				text("domain", "Domain", "example.com"),
			},
			Sample: map[string]any{"domain": "example.com"},
		},
		{
			ID:         "workplace-search",
			Label:      "Workplace Search",
			Method:     "POST",
			Path:       "/workplace-search",
			Category:   "Business Data",
			SearchType: "WorkplaceSearch",
			Help:       "Search workplace affiliations.",
			Fields: []model.FieldSpec{
				text("first_name", "First name", ""),
				text("last_name", "Last name", ""),
				text("company", "Company", ""),
			},
			Sample: map[string]any{"last_name": "Smith", "company": "Acme LLC"},
		},
		{
			ID:         "business-id",
			Label:      "Business ID",
			Method:     "POST",
			Path:       "/business-id",
			Category:   "Business Data",
			SearchType: "BusinessID",
			Help:       "Look up a business by unique id.",
			Fields: []model.FieldSpec{
				text("business_id", "Business id", ""),
			},
			Sample: map[string]any{"business_id": ""},
		},

		// Raw-body-only operations: no form schema, the JSON editor sources
		// the body (seeded from the sample).
		rawOnly("contact-enrichment-plus", "Contact Enrichment Plus", "/contact-enrichment-plus", "Dev APIs", "ContactEnrichPlus",
			map[string]any{"first_name": "John", "last_name": "Smith", "phone": "(555) 555-5555"}),
		rawOnly("contact-id-plus", "Contact ID Plus", "/contact-id-plus", "Dev APIs", "ContactIdPlus",
			map[string]any{"person_id": ""}),
		rawOnly("caller-id-plus", "Caller ID Plus", "/caller-id-plus", "Dev APIs", "PhoneEnrichPlus",
			map[string]any{"phone": "(555) 555-5555"}),
		rawOnly("email-id-plus", "Email ID Plus", "/email-id-plus", "Dev APIs", "EmailEnrichPlus",
			map[string]any{"email": "john@example.com"}),
		rawOnly("address-id-plus", "Address ID Plus", "/address-id-plus", "Dev APIs", "AddressIdPlus",
			map[string]any{"address_line_1": "100 Main St", "address_line_2": "Denver, CO 80203"}),
		rawOnly("criminal-search-v2", "Criminal Search V2", "/criminal-search-v2", "People Data", "CriminalSearchV2",
			map[string]any{"first_name": "John", "last_name": "Smith", "state": "CO"}),
		rawOnly("debt-search-v2", "Debt Search V2", "/debt-v2", "People Data", "DebtSearchV2",
			map[string]any{"first_name": "John", "last_name": "Smith"}),
		rawOnly("eviction-search", "Eviction Search", "/eviction-search", "People Data", "EvictionSearch",
			map[string]any{"first_name": "John", "last_name": "Smith"}),
		rawOnly("marriage-search", "Marriage Search", "/marriage-search", "People Data", "MarriageSearch",
			map[string]any{"first_name": "John", "last_name": "Smith", "state": "CO"}),
		rawOnly("ofac-search", "OFAC Search", "/ofac-search", "People Data", "OfacSearch",
			map[string]any{"first_name": "John", "last_name": "Smith"}),
		rawOnly("pre-foreclosure-search-v2", "Pre-Foreclosure Search V2", "/pre-foreclosure-search-v2", "Property Data", "ForeclosureV2Search",
			map[string]any{"address": map[string]any{"address_line_2": "Denver, CO"}}),
		rawOnly("professional-license-search", "Professional License Search", "/professional-license-search", "People Data", "ProLicense",
			map[string]any{"first_name": "John", "last_name": "Smith", "state": "CO"}),
		rawOnly("vehicle-ownership-search", "Vehicle Ownership Search", "/vehicle-ownership-search", "People Data", "VehicleRegistrationSearch",
			map[string]any{"first_name": "John", "last_name": "Smith", "state": "CO"}),
		rawOnly("eleadverify", "eLeadVerify", "/eleadverify", "People Data", "eLeadVerify",
			map[string]any{"first_name": "John", "last_name": "Smith", "email": "john@example.com"}),
		rawOnly("data-alerts-add-subscription", "Data Alerts: Add Subscription", "/data-alerts/add-subscription", "Data Alerts", "DataAlertsAddSubscription",
			map[string]any{"person_id": ""}),
		rawOnly("data-alerts-remove-subscription", "Data Alerts: Remove Subscription", "/data-alerts/remove-subscription", "Data Alerts", "DataAlertsRemoveSubscription",
			map[string]any{"subscription_id": ""}),
		rawOnly("data-alerts-get-subscription", "Data Alerts: Get Subscription", "/data-alerts/get-subscription", "Data Alerts", "DataAlertsGetSubscription",
			map[string]any{"subscription_id": ""}),
		rawOnly("data-alerts-count-alert", "Data Alerts: Count Alerts", "/data-alerts/count-alert", "Data Alerts", "DataAlertsCountAlert",
			map[string]any{"subscription_id": ""}),
		rawOnly("data-alerts-get-alert", "Data Alerts: Get Alert", "/data-alerts/get-alert", "Data Alerts", "DataAlertsGetAlert",
			map[string]any{"alert_id": ""}),
	}
}

func rawOnly(id, label, path, category, searchType string, sample map[string]any) model.EndpointDescriptor {
	return model.EndpointDescriptor{
		ID:         id,
		Label:      label,
		Method:     "POST",
		Path:       path,
		Category:   category,
		SearchType: searchType,
		Help:       "Raw JSON body endpoint. Edit the request document directly.",
		Sample:     sample,
	}
}
