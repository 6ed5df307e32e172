package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Error texts are sent to the user verbatim.
var (
	ErrGeoUnavailable     = errors.New("Can not get geo data")
	ErrCityNotFound       = errors.New("City not found")
	ErrWeatherUnavailable = errors.New("Can not get weather data")
)

type GeoResult struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
	Time          string  `json:"time"`
}

// Client talks to the Open-Meteo geocoding and forecast endpoints.
type Client struct {
	geoURL     string
	weatherURL string
	http       *http.Client
}

func NewClient(geoURL, weatherURL string) *Client {
	return &Client{
		geoURL:     geoURL,
		weatherURL: weatherURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Search(ctx context.Context, city string) ([]GeoResult, error) {
	endpoint := c.geoURL + "?name=" + url.QueryEscape(city)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ErrGeoUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrGeoUnavailable
	}
	var payload struct {
		Results []GeoResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ErrGeoUnavailable
	}
	if len(payload.Results) == 0 {
		return nil, ErrCityNotFound
	}
	return payload.Results, nil
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.weatherURL+"?"+params.Encode(), nil)
	if err != nil {
		return CurrentWeather{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return CurrentWeather{}, ErrWeatherUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return CurrentWeather{}, ErrWeatherUnavailable
	}
	var payload struct {
		CurrentWeather CurrentWeather `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CurrentWeather{}, ErrWeatherUnavailable
	}
	return payload.CurrentWeather, nil
}
