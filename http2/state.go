// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http2

// State identifies a point in the HTTP/2 frame grammar a Parser can be
// suspended at between Resume calls. Exact values are not part of the
// API contract.
type State uint8

const (
	// --- frame header ----------------------------------------------------
	stateFrameLength1 State = iota
	stateFrameLength2
	stateFrameLength3
	stateFrameType
	stateFrameFlags
	stateFrameStreamID1
	stateFrameStreamID2
	stateFrameStreamID3
	stateFrameStreamID4
	stateFrameFormatEnd
	stateFramePadding

	// --- DATA --------------------------------------------------------------
	stateDataPadLength
	stateDataData

	// --- GOAWAY --------------------------------------------------------------
	stateGoAwayStreamID1
	stateGoAwayStreamID2
	stateGoAwayStreamID3
	stateGoAwayStreamID4
	stateGoAwayErrorCode1
	stateGoAwayErrorCode2
	stateGoAwayErrorCode3
	stateGoAwayErrorCode4
	stateGoAwayCallback
	stateGoAwayDebugData

	// --- HEADERS --------------------------------------------------------------
	stateHeadersPadLengthWithPriority
	stateHeadersPadLengthWithoutPriority
	stateHeadersStreamID1
	stateHeadersStreamID2
	stateHeadersStreamID3
	stateHeadersStreamID4
	stateHeadersWeight
	stateHeadersCallback
	stateHeadersFragment

	// --- PING --------------------------------------------------------------
	statePingData

	// --- PRIORITY --------------------------------------------------------------
	statePriorityStreamID1
	statePriorityStreamID2
	statePriorityStreamID3
	statePriorityStreamID4
	statePriorityWeight

	// --- PUSH_PROMISE --------------------------------------------------------------
	statePushPromisePadLength
	statePushPromiseStreamID1
	statePushPromiseStreamID2
	statePushPromiseStreamID3
	statePushPromiseStreamID4
	statePushPromiseCallback

	// --- RST_STREAM --------------------------------------------------------------
	stateRstStreamErrorCode1
	stateRstStreamErrorCode2
	stateRstStreamErrorCode3
	stateRstStreamErrorCode4
	stateRstStreamCallback

	// --- SETTINGS --------------------------------------------------------------
	stateSettingsID1
	stateSettingsID2
	stateSettingsValue1
	stateSettingsValue2
	stateSettingsValue3
	stateSettingsValue4
	stateSettingsCallback

	// --- unsupported / unknown frame type ----------------------------------
	stateUnsupportedPadLength
	stateUnsupportedData

	// --- WINDOW_UPDATE --------------------------------------------------------------
	stateWindowUpdateIncrement1
	stateWindowUpdateIncrement2
	stateWindowUpdateIncrement3
	stateWindowUpdateIncrement4
	stateWindowUpdateCallback
)
